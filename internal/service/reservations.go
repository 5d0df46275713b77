package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/reservekit/reserve-client/internal/api"
	"github.com/reservekit/reserve-client/internal/domain"
)

// ReservationService accesses the reservation resource. All reservation
// endpoints require authentication.
type ReservationService struct {
	api *api.Client
}

// NewReservationService builds the service.
func NewReservationService(client *api.Client) *ReservationService {
	return &ReservationService{api: client}
}

// Create books a reservation and returns its id from the Location header.
func (s *ReservationService) Create(ctx context.Context, req domain.ReservationCreateRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	return s.api.CreatedID(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/reservations",
		Body:   req,
		Auth:   true,
	})
}

// FromCart builds the creation payload for the given cart and books it.
func (s *ReservationService) FromCart(ctx context.Context, cart domain.Cart, name, date string, hour int) (string, error) {
	req := domain.ReservationCreateRequest{
		ReservationName: name,
		Date:            date,
		Hour:            hour,
	}
	if cart.Store != nil {
		req.StoreID = cart.Store.StoreID
	}
	for _, item := range cart.Items {
		req.Menus = append(req.Menus, domain.ReservationMenu{
			MenuID:   item.MenuID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	return s.Create(ctx, req)
}

// Search lists the caller's reservations matching the filter.
func (s *ReservationService) Search(ctx context.Context, params domain.ReservationSearchParams, page domain.PageParams) (domain.ReservationList, error) {
	query := url.Values{}
	if params.StoreID != "" {
		query.Set("storeId", params.StoreID)
	}
	if params.Date != "" {
		query.Set("date", params.Date)
	}
	page.Query(query)

	var list domain.ReservationList
	err := s.api.JSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/reservations",
		Query:  query,
		Auth:   true,
	}, &list)
	return list, err
}

// Get fetches one reservation.
func (s *ReservationService) Get(ctx context.Context, reservationID string) (domain.Reservation, error) {
	var reservation domain.Reservation
	err := s.api.JSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/reservations/" + reservationID,
		Auth:   true,
	}, &reservation)
	return reservation, err
}

// Update changes the reservation's name, date, or hour.
func (s *ReservationService) Update(ctx context.Context, reservationID string, req domain.ReservationUpdateRequest) error {
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodPut,
		Path:   "/reservations/" + reservationID,
		Body:   req,
		Auth:   true,
	})
	return err
}

// Cancel deletes the reservation.
func (s *ReservationService) Cancel(ctx context.Context, reservationID string) error {
	_, err := s.api.Do(ctx, api.Request{
		Method: http.MethodDelete,
		Path:   "/reservations/" + reservationID,
		Auth:   true,
	})
	return err
}
