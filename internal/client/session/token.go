package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pokekeeper/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// SlotKey is the metadata key the session token is persisted under.
const SlotKey = "current_user"

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the JWT payload of a persisted session.
type Claims struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
	jwt.RegisteredClaims
}

// EncodeToken signs a snapshot of u with HS256.
func EncodeToken(u *models.User, secret []byte, now time.Time) (string, error) {
	if u == nil || u.ID == "" {
		return "", fmt.Errorf("encode session: %w", ErrInvalidToken)
	}
	claims := Claims{
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.UnixNano(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  u.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// DecodeToken verifies raw and returns the user it carries. Any parse or
// signature failure yields ErrInvalidToken.
func DecodeToken(raw string, secret []byte) (*models.User, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &models.User{
		ID:        claims.Subject,
		Username:  claims.Username,
		Email:     claims.Email,
		CreatedAt: time.Unix(0, claims.CreatedAt).UTC(),
	}, nil
}
