package stubserver

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/reservekit/reserve-client/internal/auth"
	"github.com/reservekit/reserve-client/internal/domain"
)

const refreshCookieName = "refresh"

// signUp handles POST /sign-up.
func (s *Server) signUp(c *fiber.Ctx) error {
	var req domain.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
	}

	hash, err := auth.HashPassword(req.Password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Username]; exists {
		return respondError(c, http.StatusConflict, codeUsernameDuplicate, "Username already exists.")
	}
	s.users[req.Username] = &stubUser{
		ID:           newID(),
		Username:     req.Username,
		Nickname:     req.Nickname,
		PasswordHash: hash,
		SignUpDate:   today(),
	}
	return c.SendStatus(http.StatusCreated)
}

// signIn handles POST /sign-in: on success the access token travels in the
// Authorization response header and the refresh token in an HttpOnly
// cookie.
func (s *Server) signIn(c *fiber.Ctx) error {
	var req domain.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}

	s.mu.Lock()
	user, ok := s.users[req.Username]
	s.mu.Unlock()
	if !ok {
		return respondError(c, http.StatusUnauthorized, codeWrongCredential, "Username or password is incorrect.")
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return respondError(c, http.StatusUnauthorized, codeWrongCredential, "Username or password is incorrect.")
	}

	return s.issueTokens(c, user)
}

// signOut handles POST /sign-out. The stub holds no server-side session
// state, so it only drops the refresh cookie.
func (s *Server) signOut(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-time.Hour),
	})
	return c.SendStatus(http.StatusOK)
}

// refreshToken handles POST /token-refresh, authenticating via the refresh
// cookie.
func (s *Server) refreshToken(c *fiber.Ctx) error {
	cookie := c.Cookies(refreshCookieName)
	if cookie == "" {
		return respondError(c, http.StatusUnauthorized, codeInvalidRefreshTokenFormat, "The refresh token format is invalid.")
	}
	claims, err := s.tokens.parse(cookie)
	if err != nil {
		if err == errTokenExpired {
			return respondError(c, http.StatusUnauthorized, codeExpiredRefreshToken, "Refresh token is expired.")
		}
		return respondError(c, http.StatusUnauthorized, codeInvalidRefreshTokenFormat, "The refresh token format is invalid.")
	}

	s.mu.Lock()
	user, ok := s.users[claims.Username]
	s.mu.Unlock()
	if !ok {
		return respondError(c, http.StatusUnauthorized, codeInvalidRefreshTokenFormat, "The refresh token format is invalid.")
	}

	return s.issueTokens(c, user)
}

// issueTokens signs a fresh access/refresh pair for the user.
func (s *Server) issueTokens(c *fiber.Ctx, user *stubUser) error {
	accessToken, err := s.tokens.generate(user, s.cfg.AccessTTL())
	if err != nil {
		return err
	}
	refreshToken, err := s.tokens.generate(user, s.cfg.RefreshTTL())
	if err != nil {
		return err
	}

	c.Set("Authorization", accessToken)
	c.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		HTTPOnly: true,
		MaxAge:   s.cfg.RefreshTTLSeconds,
	})
	return c.JSON(fiber.Map{"accessToken": accessToken})
}
