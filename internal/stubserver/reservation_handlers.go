package stubserver

import (
	"net/http"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/reservekit/reserve-client/internal/domain"
)

// createReservation handles POST /reservations.
func (s *Server) createReservation(c *fiber.Ctx) error {
	caller, ok := s.caller(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, codeSignInRequired, "Please sign in to continue.")
	}
	var req domain.ReservationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stores[req.StoreID]; !ok {
		return respondError(c, http.StatusNotFound, codeStoreNotFound, "Store does not exist.")
	}
	reservation := &stubReservation{
		Reservation: domain.Reservation{
			ReservationID:   newID(),
			StoreID:         req.StoreID,
			Registrant:      caller.Username,
			ReservationName: req.ReservationName,
			Date:            req.Date,
			Hour:            req.Hour,
		},
		Menus: req.Menus,
	}
	s.reservations[reservation.ReservationID] = reservation

	c.Set("Location", "/v1/reservations/"+reservation.ReservationID)
	return c.SendStatus(http.StatusCreated)
}

// searchReservations handles GET /reservations, scoped to the caller.
func (s *Server) searchReservations(c *fiber.Ctx) error {
	caller, ok := s.caller(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, codeSignInRequired, "Please sign in to continue.")
	}
	storeID := c.Query("storeId")
	date := c.Query("date")

	s.mu.Lock()
	matches := make([]domain.Reservation, 0)
	for _, r := range s.reservations {
		if r.Registrant != caller.Username {
			continue
		}
		if storeID != "" && r.StoreID != storeID {
			continue
		}
		if date != "" && r.Date != date {
			continue
		}
		matches = append(matches, r.Reservation)
	}
	s.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].ReservationID < matches[j].ReservationID })
	page, size, bounds := paginate(c, len(matches))

	return c.JSON(domain.ReservationList{
		Count:      len(matches),
		PageSize:   size,
		PageNumber: page,
		HasNext:    (page+1)*size < len(matches),
		Results:    matches[bounds[0]:bounds[1]],
	})
}

// getReservation handles GET /reservations/{id}.
func (s *Server) getReservation(c *fiber.Ctx) error {
	caller, _ := s.caller(c)

	s.mu.Lock()
	reservation, ok := s.reservations[c.Params("id")]
	s.mu.Unlock()
	if !ok || caller == nil || reservation.Registrant != caller.Username {
		return respondError(c, http.StatusNotFound, codeInvalidRequest, "Reservation does not exist.")
	}
	return c.JSON(reservation.Reservation)
}

// updateReservation handles PUT /reservations/{id}.
func (s *Server) updateReservation(c *fiber.Ctx) error {
	caller, _ := s.caller(c)
	var req domain.ReservationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[c.Params("id")]
	if !ok || caller == nil || reservation.Registrant != caller.Username {
		return respondError(c, http.StatusNotFound, codeInvalidRequest, "Reservation does not exist.")
	}
	reservation.ReservationName = req.ReservationName
	reservation.Date = req.Date
	reservation.Hour = req.Hour
	return c.SendStatus(http.StatusOK)
}

// deleteReservation handles DELETE /reservations/{id}.
func (s *Server) deleteReservation(c *fiber.Ctx) error {
	caller, _ := s.caller(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[c.Params("id")]
	if !ok || caller == nil || reservation.Registrant != caller.Username {
		return respondError(c, http.StatusNotFound, codeInvalidRequest, "Reservation does not exist.")
	}
	delete(s.reservations, reservation.ReservationID)
	return c.SendStatus(http.StatusOK)
}
