package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
	"github.com/dmitrijs2005/pokekeeper/internal/client/session"
	"github.com/dmitrijs2005/pokekeeper/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func newAuth(t *testing.T) (AuthService, *session.Session) {
	t.Helper()
	sess := session.New()
	return NewAuthService(setupDB(t), sess, testSecret, nil), sess
}

func TestRegister_CreatesUserAndLogsIn(t *testing.T) {
	db := setupDB(t)
	sess := session.New()
	a := NewAuthService(db, sess, testSecret, nil)
	ctx := context.Background()

	u, err := a.Register(ctx, "ash", "ash@poke.com", "pika123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ash", u.Username)
	assert.Empty(t, u.PasswordHash)

	assert.True(t, a.IsLoggedIn())
	assert.Equal(t, u, a.CurrentUser())

	var hash string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM users WHERE email=?`, "ash@poke.com").Scan(&hash))
	assert.Equal(t, cryptox.HashPassword("pika123"), hash)

	slot := getMeta(t, db, session.SlotKey)
	require.NotNil(t, slot)
	fromSlot, err := session.DecodeToken(string(slot), testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, fromSlot.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	a := NewAuthService(db, session.New(), testSecret, nil)
	ctx := context.Background()

	_, err := a.Register(ctx, "ash", "ash@poke.com", "pika123")
	require.NoError(t, err)
	require.NoError(t, a.Logout(ctx))

	u, err := a.Register(ctx, "ash2", "ash@poke.com", "other1")
	require.ErrorIs(t, err, ErrAlreadyExists)
	assert.Nil(t, u)
	assert.False(t, a.IsLoggedIn())
	assert.Equal(t, 1, countRows(t, db, "users"))
	assert.Nil(t, getMeta(t, db, session.SlotKey))
}

func TestRegister_StorageFailure(t *testing.T) {
	db := setupDB(t)
	a := NewAuthService(db, session.New(), testSecret, nil)
	require.NoError(t, db.Close())

	_, err := a.Register(context.Background(), "ash", "ash@poke.com", "pika123")
	require.ErrorIs(t, err, ErrRegistrationFailed)
	assert.False(t, a.IsLoggedIn())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"success", "ash@poke.com", "pika123", nil},
		{"wrong password", "ash@poke.com", "wrong", ErrInvalidCredentials},
		{"unknown email", "misty@poke.com", "pika123", ErrInvalidCredentials},
		{"email is case sensitive", "ASH@poke.com", "pika123", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newAuth(t)
			_, err := a.Register(ctx, "ash", "ash@poke.com", "pika123")
			require.NoError(t, err)
			require.NoError(t, a.Logout(ctx))

			u, err := a.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				assert.False(t, a.IsLoggedIn())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ash", u.Username)
			assert.True(t, a.IsLoggedIn())
		})
	}
}

func TestLogin_StorageFailure(t *testing.T) {
	db := setupDB(t)
	a := NewAuthService(db, session.New(), testSecret, nil)
	require.NoError(t, db.Close())

	_, err := a.Login(context.Background(), "ash@poke.com", "pika123")
	require.ErrorIs(t, err, ErrLoginFailed)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_ClearsSessionAndSlot(t *testing.T) {
	db := setupDB(t)
	a := NewAuthService(db, session.New(), testSecret, nil)
	ctx := context.Background()

	_, err := a.Register(ctx, "ash", "ash@poke.com", "pika123")
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.IsLoggedIn())
	assert.Nil(t, a.CurrentUser())
	assert.Nil(t, getMeta(t, db, session.SlotKey))

	// logging out twice is fine
	require.NoError(t, a.Logout(ctx))
}

func TestLogout_StorageFailureStillLogsOut(t *testing.T) {
	db := setupDB(t)
	sess := session.New()
	sess.Set(&models.User{ID: "u1"})
	a := NewAuthService(db, sess, testSecret, nil)
	require.NoError(t, db.Close())

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.IsLoggedIn())
}

func TestRestore_BringsBackSession(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	first := NewAuthService(db, session.New(), testSecret, nil)
	u, err := first.Register(ctx, "ash", "ash@poke.com", "pika123")
	require.NoError(t, err)

	second := NewAuthService(db, session.New(), testSecret, nil)
	assert.False(t, second.IsLoggedIn())
	require.NoError(t, second.Restore(ctx))
	require.True(t, second.IsLoggedIn())
	assert.Equal(t, u.ID, second.CurrentUser().ID)
	assert.Equal(t, u.Email, second.CurrentUser().Email)
}

func TestRestore_NoSlot(t *testing.T) {
	a, _ := newAuth(t)
	require.NoError(t, a.Restore(context.Background()))
	assert.False(t, a.IsLoggedIn())
}

func TestRestore_DiscardsInvalidSlot(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(t *testing.T, a AuthService) []byte
	}{
		{
			name: "garbage",
			setup: func(t *testing.T, a AuthService) []byte {
				return []byte("garbage")
			},
		},
		{
			name: "signed with another secret",
			setup: func(t *testing.T, a AuthService) []byte {
				u, err := a.Register(ctx, "ash", "ash@poke.com", "pika123")
				require.NoError(t, err)
				tok, err := session.EncodeToken(u, []byte("other"), time.Now())
				require.NoError(t, err)
				return []byte(tok)
			},
		},
		{
			name: "user no longer exists",
			setup: func(t *testing.T, a AuthService) []byte {
				tok, err := session.EncodeToken(&models.User{ID: "ghost"}, testSecret, time.Now())
				require.NoError(t, err)
				return []byte(tok)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupDB(t)
			a := NewAuthService(db, session.New(), testSecret, nil)
			slot := tt.setup(t, a)
			require.NoError(t, a.Logout(ctx))

			_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES(?, ?)`, session.SlotKey, slot)
			require.NoError(t, err)

			restored := NewAuthService(db, session.New(), testSecret, nil)
			require.NoError(t, restored.Restore(ctx))
			assert.False(t, restored.IsLoggedIn())
			assert.Nil(t, getMeta(t, db, session.SlotKey))
		})
	}
}

func TestRestore_StorageFailure(t *testing.T) {
	db := setupDB(t)
	a := NewAuthService(db, session.New(), testSecret, nil)
	require.NoError(t, db.Close())

	require.Error(t, a.Restore(context.Background()))
	assert.False(t, a.IsLoggedIn())
}

func TestAuth_NilCollaborators(t *testing.T) {
	a := NewAuthService(nil, nil, testSecret, nil)
	ctx := context.Background()

	_, err := a.Register(ctx, "ash", "ash@poke.com", "pika123")
	require.ErrorIs(t, err, ErrUnknown)
	_, err = a.Login(ctx, "ash@poke.com", "pika123")
	require.ErrorIs(t, err, ErrUnknown)
	require.ErrorIs(t, a.Restore(ctx), ErrUnknown)
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.IsLoggedIn())
	assert.Nil(t, a.CurrentUser())
}

func TestSession_ObservesLoginAndLogout(t *testing.T) {
	a, sess := newAuth(t)
	ctx := context.Background()
	ch, cancel := sess.Subscribe()
	defer cancel()

	_, err := a.Register(ctx, "ash", "ash@poke.com", "pika123")
	require.NoError(t, err)
	u := <-ch
	require.NotNil(t, u)
	assert.Equal(t, "ash", u.Username)

	require.NoError(t, a.Logout(ctx))
	assert.Nil(t, <-ch)
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name                             string
		username, email, password, again string
		ok                               bool
	}{
		{"valid", "ash", "ash@poke.com", "pika123", "pika123", true},
		{"empty username", " ", "ash@poke.com", "pika123", "pika123", false},
		{"empty email", "ash", "", "pika123", "pika123", false},
		{"empty password", "ash", "ash@poke.com", "", "", false},
		{"bad email", "ash", "ash@poke", "pika123", "pika123", false},
		{"short password", "ash", "ash@poke.com", "pika", "pika", false},
		{"mismatch", "ash", "ash@poke.com", "pika123", "pika124", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.username, tt.email, tt.password, tt.again)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}
