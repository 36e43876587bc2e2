// Package users provides the client-side persistence layer for local user
// accounts.
//
// # Overview
//
// Repository covers the operations the credential store needs: create,
// lookup by email or id, an existence check and an administrative delete.
// SQLiteRepository persists users over a dbx.DBTX (either *sql.DB or
// *sql.Tx), so the same code runs inside or outside a transaction.
//
// # Data Model
//
// Email is unique and compared byte-for-byte. Timestamps are stored as
// Unix nanoseconds. Deleting a user cascades to its favorites through the
// schema's foreign key.
//
// Typical Usage
//
//	repo := users.NewSQLiteRepository(db)
//	_ = repo.Create(ctx, u)
//	u, err := repo.GetByEmail(ctx, "ash@poke.com")
//	if errors.Is(err, common.ErrorNotFound) { ... }
package users
