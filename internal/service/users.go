package service

import (
	"context"
	"net/http"

	"github.com/reservekit/reserve-client/internal/api"
	"github.com/reservekit/reserve-client/internal/domain"
)

// UserService accesses the user profile resource.
type UserService struct {
	api *api.Client
}

// NewUserService builds the service.
func NewUserService(client *api.Client) *UserService {
	return &UserService{api: client}
}

// Get fetches a user's public profile.
func (s *UserService) Get(ctx context.Context, username string) (domain.User, error) {
	var user domain.User
	err := s.api.JSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/users/" + username,
	}, &user)
	return user, err
}

// Update changes the caller's nickname and description.
func (s *UserService) Update(ctx context.Context, req domain.UserUpdateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "/users",
		Body:   req,
		Auth:   true,
	})
	return err
}

// UpdatePassword changes the caller's password.
func (s *UserService) UpdatePassword(ctx context.Context, req domain.PasswordUpdateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "/users/password",
		Body:   req,
		Auth:   true,
	})
	return err
}

// Delete removes the caller's account. The password confirms the request.
// Local session state is only dropped after the server confirms deletion;
// a failed delete leaves a valid signed-in account behind.
func (s *UserService) Delete(ctx context.Context, req domain.UserDeleteRequest) error {
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "/users",
		Body:   req,
		Auth:   true,
	})
	return err
}
