package client

import "errors"

var (
	ErrUnavailable = errors.New("catalog unavailable")
	ErrNotFound    = errors.New("catalog item not found")
	ErrDecode      = errors.New("catalog response malformed")
)
