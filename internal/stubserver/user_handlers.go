package stubserver

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/reservekit/reserve-client/internal/auth"
	"github.com/reservekit/reserve-client/internal/domain"
)

// getUser handles GET /users/{username}.
func (s *Server) getUser(c *fiber.Ctx) error {
	s.mu.Lock()
	user, ok := s.users[c.Params("username")]
	s.mu.Unlock()
	if !ok {
		return respondError(c, http.StatusNotFound, codeUserNotFound, "User does not exist.")
	}
	return c.JSON(domain.User{
		Username:    user.Username,
		Nickname:    user.Nickname,
		Description: user.Description,
		SignUpDate:  user.SignUpDate,
	})
}

// updateUser handles PUT /users.
func (s *Server) updateUser(c *fiber.Ctx) error {
	caller, ok := s.caller(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, codeSignInRequired, "Please sign in to continue.")
	}
	var req domain.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
	}

	s.mu.Lock()
	caller.Nickname = req.Nickname
	caller.Description = req.Description
	s.mu.Unlock()
	return c.SendStatus(http.StatusOK)
}

// updatePassword handles PUT /users/password.
func (s *Server) updatePassword(c *fiber.Ctx) error {
	caller, ok := s.caller(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, codeSignInRequired, "Please sign in to continue.")
	}
	var req domain.PasswordUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
	}
	if err := auth.ComparePassword(caller.PasswordHash, req.OldPassword); err != nil {
		return respondError(c, http.StatusUnauthorized, codeWrongPassword, "Password is incorrect.")
	}

	hash, err := auth.HashPassword(req.NewPassword, s.cfg.BcryptCost)
	if err != nil {
		return err
	}
	s.mu.Lock()
	caller.PasswordHash = hash
	s.mu.Unlock()
	return c.SendStatus(http.StatusOK)
}

// deleteUser handles DELETE /users. The password confirms the request.
func (s *Server) deleteUser(c *fiber.Ctx) error {
	caller, ok := s.caller(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, codeSignInRequired, "Please sign in to continue.")
	}
	var req domain.UserDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}
	if err := auth.ComparePassword(caller.PasswordHash, req.Password); err != nil {
		return respondError(c, http.StatusUnauthorized, codeWrongPassword, "Password is incorrect.")
	}

	s.mu.Lock()
	delete(s.users, caller.Username)
	s.mu.Unlock()
	return c.SendStatus(http.StatusOK)
}
