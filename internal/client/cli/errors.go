package cli

import (
	"errors"

	"github.com/dmitrijs2005/pokekeeper/internal/client/client"
	"github.com/dmitrijs2005/pokekeeper/internal/client/services"
)

var (
	errNotLoggedIn = errors.New("please log in first")
	errUsage       = errors.New("usage")
)

// userMessage maps service errors to short user-facing text.
func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, errUsage):
		return err.Error()
	case errors.Is(err, services.ErrAlreadyExists):
		return "an account with this email already exists"
	case errors.Is(err, services.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, services.ErrFavoriteExists):
		return "already in your favorites"
	case errors.Is(err, services.ErrFavoriteNotFound):
		return "not in your favorites"
	case errors.Is(err, client.ErrNotFound):
		return "no such pokemon"
	case errors.Is(err, client.ErrUnavailable):
		return "catalog is unavailable, try again later"
	case errors.Is(err, services.ErrRegistrationFailed):
		return "registration failed"
	case errors.Is(err, services.ErrLoginFailed):
		return "login failed"
	}
	return err.Error()
}
