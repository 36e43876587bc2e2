// Package models defines client-side data models used by the pokekeeper CLI.
package models

import "time"

// User is a locally registered account.
type User struct {
	// ID is a uuid assigned on registration.
	ID string

	Username string

	// Email is the unique, case-sensitive login key.
	Email string

	// PasswordHash is the lowercase hex SHA-256 of the password. It is empty
	// on users handed out by the auth service.
	PasswordHash string

	CreatedAt time.Time
}
