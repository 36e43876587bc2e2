package cli

import (
	"context"

	"github.com/dmitrijs2005/pokekeeper/internal/client/services"
	"github.com/dmitrijs2005/pokekeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration form, validates it and creates the
// account. A successful registration also logs the user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if err := services.ValidateRegistration(username, email, string(password), string(confirm)); err != nil {
		return err
	}

	u, err := a.authService.Register(ctx, username, email, string(password))
	if err != nil {
		return err
	}

	a.printf("Welcome, %s!\n", u.Username)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	a.printf("Logged in as %s\n", u.Username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.authService.CurrentUser()
	if u == nil {
		return errNotLoggedIn
	}
	a.printf("%s <%s>, member since %s\n", u.Username, u.Email, u.CreatedAt.Format("2006-01-02"))
	return nil
}
