// Package common defines sentinel errors shared by the repository layer and
// small helpers used across packages. Callers should use errors.Is to match
// the errors.
package common

import "errors"

var (
	// ErrorNotFound means no row matched.
	ErrorNotFound = errors.New("not found")

	// ErrorAlreadyExists means a unique key is already taken.
	ErrorAlreadyExists = errors.New("already exists")

	// ErrorMissingReference means a foreign key points at no row.
	ErrorMissingReference = errors.New("missing reference")
)
