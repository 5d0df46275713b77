// Package service provides typed per-resource wrappers over the API
// gateway. Each service owns the paths, query parameters, and payload
// shapes of one backend resource; authentication and retry behavior stay
// in the gateway.
package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/reservekit/reserve-client/internal/api"
	"github.com/reservekit/reserve-client/internal/domain"
)

// StoreService accesses the store resource.
type StoreService struct {
	api *api.Client
}

// NewStoreService builds the service.
func NewStoreService(client *api.Client) *StoreService {
	return &StoreService{api: client}
}

// Create registers a new store and returns its id from the Location
// header.
func (s *StoreService) Create(ctx context.Context, req domain.StoreCreateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.api.CreatedID(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/stores",
		Body:   req,
		Auth:   true,
	})
}

// Get fetches one store.
func (s *StoreService) Get(ctx context.Context, storeID string) (domain.Store, error) {
	var store domain.Store
	err := s.api.JSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/stores/" + storeID,
	}, &store)
	return store, err
}

// Search lists stores matching the filter.
func (s *StoreService) Search(ctx context.Context, params domain.StoreSearchParams, page domain.PageParams) (domain.StoreList, error) {
	query := url.Values{}
	if params.Registrant != "" {
		query.Set("registrant", params.Registrant)
	}
	if params.Query != "" {
		query.Set("query", params.Query)
	}
	page.Query(query)

	var list domain.StoreList
	err := s.api.JSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/stores",
		Query:  query,
	}, &list)
	return list, err
}

// ByRegistrant lists the stores registered by a user.
func (s *StoreService) ByRegistrant(ctx context.Context, username string, page domain.PageParams) (domain.StoreList, error) {
	return s.Search(ctx, domain.StoreSearchParams{Registrant: username}, page)
}

// Update replaces the store's mutable fields.
func (s *StoreService) Update(ctx context.Context, storeID string, req domain.StoreCreateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "/stores/" + storeID,
		Body:   req,
		Auth:   true,
	})
	return err
}

// Delete removes the store.
func (s *StoreService) Delete(ctx context.Context, storeID string) error {
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "/stores/" + storeID,
		Auth:   true,
	})
	return err
}
