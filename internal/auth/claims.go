package auth

import (
	"errors"
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/reservekit/reserve-client/internal/domain"
)

// ErrNoToken is returned when no access token is available to decode.
var ErrNoToken = errors.New("no access token")

// ErrTokenMalformed is returned when a token string is present but cannot
// be decoded. It is deliberately distinct from ErrNoToken so callers can
// tell a broken token from an absent one.
var ErrTokenMalformed = errors.New("malformed access token")

// tokenClaims is the backend's access-token payload.
type tokenClaims struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// DecodeToken extracts the identity claims from an access token without
// contacting the server. The signature is not verified: the token is
// treated as trusted transport issued by the backend, not re-validated
// here.
func DecodeToken(tok string) (domain.AuthUser, error) {
	if tok == "" {
		return domain.AuthUser{}, ErrNoToken
	}
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return domain.AuthUser{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	return domain.AuthUser{
		UserID:   claims.Subject,
		Username: claims.Username,
		Nickname: claims.Nickname,
	}, nil
}
