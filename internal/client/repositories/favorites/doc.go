// Package favorites provides the client-side persistence layer for the
// per-user favorites list.
//
// Each row links a user (foreign key, cascade on delete) to a catalog item;
// (user_id, item_id) is unique. Listings are ordered most recent first.
// SQLiteRepository works over a dbx.DBTX so services can compose several
// calls in one transaction.
package favorites
