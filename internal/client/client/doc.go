// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
//  1. A transport-agnostic contract for the remote catalog (see the Client
//     interface): paged listing and detail lookup by id or name.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that maps
//     transport failures and status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     database with foreign keys on, pinned to a single connection, with the
//     embedded goose migrations applied.
//
// # Error Handling
//
// Catalog failures are exposed as sentinel errors that callers match with
// errors.Is: ErrUnavailable, ErrNotFound, ErrDecode.
package client
