package service

import (
	"context"
	"net/http"

	"github.com/reservekit/reserve-client/internal/api"
	"github.com/reservekit/reserve-client/internal/domain"
)

// MenuService accesses the menu resource.
type MenuService struct {
	api *api.Client
}

// NewMenuService builds the service.
func NewMenuService(client *api.Client) *MenuService {
	return &MenuService{api: client}
}

// Create adds a menu to a store and returns its id from the Location
// header.
func (s *MenuService) Create(ctx context.Context, storeID string, req domain.MenuCreateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.api.CreatedID(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/stores/" + storeID + "/menus",
		Body:   req,
		Auth:   true,
	})
}

// ListForStore fetches all menus of a store.
func (s *MenuService) ListForStore(ctx context.Context, storeID string) (domain.MenuList, error) {
	var list domain.MenuList
	err := s.api.JSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/stores/" + storeID + "/menus",
	}, &list)
	return list, err
}

// Get fetches one menu.
func (s *MenuService) Get(ctx context.Context, menuID string) (domain.Menu, error) {
	var menu domain.Menu
	err := s.api.JSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/menus/" + menuID,
	}, &menu)
	return menu, err
}

// Update replaces the menu's mutable fields.
func (s *MenuService) Update(ctx context.Context, menuID string, req domain.MenuCreateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "/menus/" + menuID,
		Body:   req,
		Auth:   true,
	})
	return err
}

// Delete removes the menu.
func (s *MenuService) Delete(ctx context.Context, menuID string) error {
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "/menus/" + menuID,
		Auth:   true,
	})
	return err
}
