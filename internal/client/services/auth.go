// Package services contains application services for the pokekeeper client.
// This file defines the credential store: local registration, login, logout,
// and restoring the persisted session at start-up.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
	"github.com/dmitrijs2005/pokekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pokekeeper/internal/client/repositories/users"
	"github.com/dmitrijs2005/pokekeeper/internal/client/session"
	"github.com/dmitrijs2005/pokekeeper/internal/common"
	"github.com/dmitrijs2005/pokekeeper/internal/cryptox"
	"github.com/dmitrijs2005/pokekeeper/internal/dbx"
	"github.com/dmitrijs2005/pokekeeper/internal/logging"
	"github.com/google/uuid"
)

var (
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrLoginFailed        = errors.New("login failed")
	ErrValidation         = errors.New("validation failed")
	ErrUnknown            = errors.New("unknown error")
)

// MinPasswordLength is the shortest password ValidateRegistration accepts.
const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// AuthService defines the credential store operations used by the CLI.
//
// Register and Login make the returned user the current session and persist
// it, so Restore brings it back on the next start. Logout always succeeds.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	CurrentUser() *models.User
	IsLoggedIn() bool
}

type authService struct {
	db      *sql.DB
	session *session.Session
	secret  []byte
	log     logging.Logger
	now     func() time.Time
}

// NewAuthService binds the credential store to a database, the session it
// drives, and the key that signs the persisted session slot.
func NewAuthService(db *sql.DB, sess *session.Session, secret []byte, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{db: db, session: sess, secret: secret, log: log, now: time.Now}
}

func (a *authService) ready() bool {
	return a.db != nil && a.session != nil
}

func (a *authService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if !a.ready() {
		return nil, ErrUnknown
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
		CreatedAt:    a.now().UTC(),
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := users.NewSQLiteRepository(tx).Create(ctx, u); err != nil {
			return err
		}
		return a.writeSlot(ctx, metadata.NewSQLiteRepository(tx), u)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			a.log.Info(ctx, "registration rejected: email taken", "email", email)
			return nil, ErrAlreadyExists
		}
		a.log.Error(ctx, "registration failed", "email", email, "error", err)
		return nil, errors.Join(ErrRegistrationFailed, err)
	}

	a.session.Set(u)
	a.log.Info(ctx, "user registered", "user_id", u.ID)
	return a.session.Current(), nil
}

// Login does not reveal whether the email or the password was wrong.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if !a.ready() {
		return nil, ErrUnknown
	}

	u, err := users.NewSQLiteRepository(a.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.log.Info(ctx, "login rejected", "email", email)
			return nil, ErrInvalidCredentials
		}
		a.log.Error(ctx, "login lookup failed", "email", email, "error", err)
		return nil, errors.Join(ErrLoginFailed, err)
	}

	if !cryptox.VerifyPassword(password, u.PasswordHash) {
		a.log.Info(ctx, "login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	if err := a.writeSlot(ctx, metadata.NewSQLiteRepository(a.db), u); err != nil {
		a.log.Error(ctx, "persist session failed", "user_id", u.ID, "error", err)
		return nil, errors.Join(ErrLoginFailed, err)
	}

	a.session.Set(u)
	a.log.Info(ctx, "user logged in", "user_id", u.ID)
	return a.session.Current(), nil
}

// Logout clears the in-memory session first; a failure to remove the
// persisted slot is only logged.
func (a *authService) Logout(ctx context.Context) error {
	if a.session != nil {
		a.session.Clear()
	}
	if a.db == nil {
		return nil
	}
	if err := metadata.NewSQLiteRepository(a.db).Delete(ctx, session.SlotKey); err != nil {
		a.log.Warn(ctx, "failed to remove session slot", "error", err)
	}
	a.log.Info(ctx, "user logged out")
	return nil
}

// Restore loads the persisted session, if any. A slot that does not verify
// or names a user that no longer exists is removed and the session stays
// logged out.
func (a *authService) Restore(ctx context.Context) error {
	if !a.ready() {
		return ErrUnknown
	}

	repo := metadata.NewSQLiteRepository(a.db)
	raw, err := repo.Get(ctx, session.SlotKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if raw == nil {
		return nil
	}

	u, err := session.DecodeToken(string(raw), a.secret)
	if err == nil {
		_, err = users.NewSQLiteRepository(a.db).GetByID(ctx, u.ID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("restore session: %w", err)
		}
	}
	if err != nil {
		a.log.Warn(ctx, "discarding persisted session", "error", err)
		if err := repo.Delete(ctx, session.SlotKey); err != nil {
			a.log.Warn(ctx, "failed to remove session slot", "error", err)
		}
		return nil
	}

	a.session.Set(u)
	a.log.Debug(ctx, "session restored", "user_id", u.ID)
	return nil
}

func (a *authService) CurrentUser() *models.User {
	if a.session == nil {
		return nil
	}
	return a.session.Current()
}

func (a *authService) IsLoggedIn() bool {
	return a.session != nil && a.session.IsLoggedIn()
}

func (a *authService) writeSlot(ctx context.Context, repo metadata.Repository, u *models.User) error {
	token, err := session.EncodeToken(u, a.secret, a.now())
	if err != nil {
		return err
	}
	return repo.Set(ctx, session.SlotKey, []byte(token))
}

// ValidateRegistration checks the registration form before Register is
// called. Every failure matches ErrValidation.
func ValidateRegistration(username, email, password, confirm string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return fmt.Errorf("%w: username is required", ErrValidation)
	case strings.TrimSpace(email) == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	case !emailRe.MatchString(email):
		return fmt.Errorf("%w: email is not valid", ErrValidation)
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	case password != confirm:
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	return nil
}
