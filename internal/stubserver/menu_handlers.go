package stubserver

import (
	"net/http"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/reservekit/reserve-client/internal/domain"
)

// createMenu handles POST /stores/{id}/menus.
func (s *Server) createMenu(c *fiber.Ctx) error {
	caller, _ := s.caller(c)
	var req domain.MenuCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}
	if err := req.Validate(); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
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
	menu := &domain.Menu{
		MenuID:      newID(),
		StoreID:     store.StoreID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	}
	s.menus[menu.MenuID] = menu

	c.Set("Location", "/v1/menus/"+menu.MenuID)
	return c.SendStatus(http.StatusCreated)
}

// listMenus handles GET /stores/{id}/menus.
func (s *Server) listMenus(c *fiber.Ctx) error {
	storeID := c.Params("id")

	s.mu.Lock()
	if _, ok := s.stores[storeID]; !ok {
		s.mu.Unlock()
		return respondError(c, http.StatusNotFound, codeStoreNotFound, "Store does not exist.")
	}
	results := make([]domain.Menu, 0)
	for _, menu := range s.menus {
		if menu.StoreID == storeID {
			results = append(results, *menu)
		}
	}
	s.mu.Unlock()

	sort.Slice(results, func(i, j int) bool { return results[i].MenuID < results[j].MenuID })
	return c.JSON(domain.MenuList{Count: len(results), Results: results})
}

// getMenu handles GET /menus/{id}.
func (s *Server) getMenu(c *fiber.Ctx) error {
	s.mu.Lock()
	menu, ok := s.menus[c.Params("id")]
	s.mu.Unlock()
	if !ok {
		return respondError(c, http.StatusNotFound, codeInvalidRequest, "Menu does not exist.")
	}
	return c.JSON(menu)
}

// updateMenu handles PUT /menus/{id}.
func (s *Server) updateMenu(c *fiber.Ctx) error {
	caller, _ := s.caller(c)
	var req domain.MenuCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, http.StatusBadRequest, codeInvalidRequest, "Request is invalid.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	menu, ok := s.menus[c.Params("id")]
	if !ok {
		return respondError(c, http.StatusNotFound, codeInvalidRequest, "Menu does not exist.")
	}
	store := s.stores[menu.StoreID]
	if caller == nil || store == nil || store.Registrant != caller.Username {
		return respondError(c, http.StatusForbidden, codeInvalidRequest, "Not the store registrant.")
	}
	menu.Name = req.Name
	menu.Price = req.Price
	menu.Description = req.Description
	return c.SendStatus(http.StatusOK)
}

// deleteMenu handles DELETE /menus/{id}.
func (s *Server) deleteMenu(c *fiber.Ctx) error {
	caller, _ := s.caller(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	menu, ok := s.menus[c.Params("id")]
	if !ok {
		return respondError(c, http.StatusNotFound, codeInvalidRequest, "Menu does not exist.")
	}
	store := s.stores[menu.StoreID]
	if caller == nil || store == nil || store.Registrant != caller.Username {
		return respondError(c, http.StatusForbidden, codeInvalidRequest, "Not the store registrant.")
	}
	delete(s.menus, menu.MenuID)
	return c.SendStatus(http.StatusOK)
}
