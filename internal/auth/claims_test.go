package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, sub, username, nickname string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      sub,
		"username": username,
		"nickname": nickname,
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestDecodeToken(t *testing.T) {
	tok := signedToken(t, "user-1", "alice", "Alice")

	user, err := DecodeToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.Nickname)
}

func TestDecodeTokenIgnoresSignature(t *testing.T) {
	// The decoder does not verify, so the signing key is irrelevant.
	claims := jwt.MapClaims{"sub": "user-9", "username": "bob", "nickname": "Bob"}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	user, err := DecodeToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
}

func TestDecodeEmptyToken(t *testing.T) {
	_, err := DecodeToken("")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestDecodeMalformedToken(t *testing.T) {
	_, err := DecodeToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.NotErrorIs(t, err, ErrNoToken)
}
