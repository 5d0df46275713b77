package stubserver

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/reservekit/reserve-client/internal/domain"
)

// createStore handles POST /stores.
func (s *Server) createStore(c *fiber.Ctx) error {
	caller, ok := s.caller(c)
	if !ok {
		return respondError(c, http.StatusUnauthorized, codeSignInRequired, "Please sign in to continue.")
	}
	var req domain.StoreCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
	}

	store := &domain.Store{
		StoreID:     newID(),
		Registrant:  caller.Username,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}
	s.mu.Lock()
	s.stores[store.StoreID] = store
	s.mu.Unlock()

	c.Set("Location", "/v1/stores/"+store.StoreID)
	return c.SendStatus(http.StatusCreated)
}

// getStore handles GET /stores/{id}.
func (s *Server) getStore(c *fiber.Ctx) error {
	s.mu.Lock()
	store, ok := s.stores[c.Params("id")]
	s.mu.Unlock()
	if !ok {
		return respondError(c, http.StatusNotFound, codeStoreNotFound, "Store does not exist.")
	}
	return c.JSON(store)
}

// searchStores handles GET /stores with registrant/query filters.
func (s *Server) searchStores(c *fiber.Ctx) error {
	registrant := c.Query("registrant")
	query := strings.ToLower(c.Query("query"))

	s.mu.Lock()
	matches := make([]domain.Store, 0, len(s.stores))
	for _, store := range s.stores {
		if registrant != "" && store.Registrant != registrant {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(store.Name), query) &&
			!strings.Contains(strings.ToLower(store.Description), query) {
			continue
		}
		matches = append(matches, *store)
	}
	s.mu.Unlock()

	sort.Slice(matches, func(i, j int) bool { return matches[i].StoreID < matches[j].StoreID })
	page, size, slice := paginate(c, len(matches))

	return c.JSON(domain.StoreList{
		Count:      len(matches),
		PageSize:   size,
		PageNumber: page,
		HasNext:    (page+1)*size < len(matches),
		Results:    matches[slice[0]:slice[1]],
	})
}

// updateStore handles PUT /stores/{id}.
func (s *Server) updateStore(c *fiber.Ctx) error {
	caller, _ := s.caller(c)
	var req domain.StoreCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.stores[c.Params("id")]
	if !ok {
		return respondError(c, http.StatusNotFound, codeStoreNotFound, "Store does not exist.")
	}
	if caller == nil || store.Registrant != caller.Username {
		return respondError(c, http.StatusForbidden, codeInvalidRequest, "Not the store registrant.")
	}
	store.Name = req.Name
	store.Address = req.Address
	store.Description = req.Description
	return c.SendStatus(http.StatusOK)
}

// deleteStore handles DELETE /stores/{id}.
func (s *Server) deleteStore(c *fiber.Ctx) error {
	caller, _ := s.caller(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	store, ok := s.stores[c.Params("id")]
	if !ok {
		return respondError(c, http.StatusNotFound, codeStoreNotFound, "Store does not exist.")
	}
	if caller == nil || store.Registrant != caller.Username {
		return respondError(c, http.StatusForbidden, codeInvalidRequest, "Not the store registrant.")
	}
	delete(s.stores, store.StoreID)
	for id, menu := range s.menus {
		if menu.StoreID == store.StoreID {
			delete(s.menus, id)
		}
	}
	return c.SendStatus(http.StatusOK)
}

// paginate reads page/size query values and returns the slice bounds into
// a result list of the given length.
func paginate(c *fiber.Ctx, total int) (page, size int, bounds [2]int) {
	page, _ = strconv.Atoi(c.Query("page", "0"))
	size, _ = strconv.Atoi(c.Query("size", "20"))
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	lo := page * size
	if lo > total {
		lo = total
	}
	hi := lo + size
	if hi > total {
		hi = total
	}
	return page, size, [2]int{lo, hi}
}
