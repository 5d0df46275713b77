package stubserver

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var errTokenExpired = errors.New("token expired")

// stubClaims mirrors the backend's access-token payload: subject id plus
// the username and nickname the client decodes into its session.
type stubClaims struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and validates the stub's JWTs.
type tokenIssuer struct {
	secret []byte
}

func newTokenIssuer(secret string) *tokenIssuer {
	return &tokenIssuer{secret: []byte(secret)}
}

// generate signs a token for the user with the given lifetime.
func (t *tokenIssuer) generate(user *stubUser, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &stubClaims{
		Username: user.Username,
		Nickname: user.Nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// parse validates a token. Expiry is reported as errTokenExpired so
// handlers can answer with the dedicated error codes; any other failure
// means the token is malformed.
func (t *tokenIssuer) parse(tokenStr string) (*stubClaims, error) {
	claims := &stubClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errTokenExpired
		}
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
