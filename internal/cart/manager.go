// Package cart holds the store-scoped shopping cart. All mutations keep
// two invariants: the item list is non-empty exactly when a store is set,
// and every item belongs to that store. Selecting a menu from a different
// store replaces the whole cart.
package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/reservekit/reserve-client/internal/domain"
	"github.com/reservekit/reserve-client/internal/storage"
)

// ErrItemIndexOutOfRange is returned for a positional index that no longer
// points at an item. Callers working from a stale item list should re-read
// it and retry.
var ErrItemIndexOutOfRange = errors.New("cart item index out of range")

// Manager applies cart mutations in memory and writes every resulting cart
// through to durable storage. Mutations are optimistic: there is no
// server-side cart to reconcile with.
type Manager struct {
	storage storage.Storage
	log     *zap.Logger

	mu   sync.Mutex
	cart domain.Cart
}

// NewManager loads the persisted cart, or starts empty when none exists or
// the stored value cannot be decoded.
func NewManager(st storage.Storage, logger *zap.Logger) *Manager {
	m := &Manager{storage: st, log: logger, cart: domain.Cart{Items: []domain.CartItem{}}}

	raw, ok, err := st.Get(storage.KeyCart)
	if err != nil {
		logger.Warn("failed to read persisted cart", zap.Error(err))
		return m
	}
	if !ok {
		return m
	}
	var stored domain.Cart
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("discarding undecodable persisted cart", zap.Error(err))
		return m
	}
	if stored.Items == nil {
		stored.Items = []domain.CartItem{}
	}
	if len(stored.Items) == 0 {
		stored.Store = nil
	}
	if stored.Store == nil && len(stored.Items) > 0 {
		logger.Warn("discarding persisted cart with items but no store")
		return m
	}
	m.cart = stored
	return m
}

// Cart returns a copy of the current cart.
func (m *Manager) Cart() domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone()
}

// Total returns the current cart total.
func (m *Manager) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Total()
}

// AddOrSetItem puts a menu selection into the cart.
//
// Selecting a menu from a different store while the cart is non-empty
// replaces the entire cart with a single-item cart for the new store. A
// zero quantity removes an existing item. An item already present has its
// quantity replaced, not accumulated; merging with the existing quantity
// is the caller's job before calling.
func (m *Manager) AddOrSetItem(store domain.StoreRef, menu domain.Menu, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", quantity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart.Store != nil && m.cart.Store.StoreID != store.StoreID && !m.cart.Empty() {
		if quantity == 0 {
			return nil
		}
		m.cart = domain.Cart{
			Store: &store,
			Items: []domain.CartItem{newItem(menu, quantity)},
		}
		return m.persist()
	}

	index := -1
	for i, item := range m.cart.Items {
		if item.MenuID == menu.MenuID {
			index = i
			break
		}
	}

	if quantity == 0 {
		if index == -1 {
			return nil
		}
		return m.removeAt(index)
	}

	next := domain.Cart{Store: &store}
	if index != -1 {
		next.Items = make([]domain.CartItem, len(m.cart.Items))
		copy(next.Items, m.cart.Items)
		next.Items[index].Quantity = quantity
	} else {
		next.Items = append(append([]domain.CartItem{}, m.cart.Items...), newItem(menu, quantity))
	}
	m.cart = next
	return m.persist()
}

// UpdateItemQuantity replaces the quantity of the item at index. A zero
// quantity removes the item. The index is a position in the current item
// ordering, not an id.
func (m *Manager) UpdateItemQuantity(index, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", quantity)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.cart.Items) {
		return ErrItemIndexOutOfRange
	}
	if quantity == 0 {
		return m.removeAt(index)
	}
	m.cart.Items[index].Quantity = quantity
	return m.persist()
}

// RemoveItem removes the item at index. Removing the last item also clears
// the store reference.
func (m *Manager) RemoveItem(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.cart.Items) {
		return ErrItemIndexOutOfRange
	}
	return m.removeAt(index)
}

// Clear empties the cart and clears the store reference.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cart = domain.Cart{Items: []domain.CartItem{}}
	return m.persist()
}

// removeAt drops the item at a validated index. Caller holds the lock.
func (m *Manager) removeAt(index int) error {
	items := append([]domain.CartItem{}, m.cart.Items[:index]...)
	items = append(items, m.cart.Items[index+1:]...)
	if len(items) == 0 {
		m.cart = domain.Cart{Items: []domain.CartItem{}}
	} else {
		m.cart = domain.Cart{Store: m.cart.Store, Items: items}
	}
	return m.persist()
}

// persist writes the current cart through to storage. Caller holds the
// lock.
func (m *Manager) persist() error {
	raw, err := json.Marshal(m.cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := m.storage.Set(storage.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

func newItem(menu domain.Menu, quantity int) domain.CartItem {
	return domain.CartItem{
		MenuID:   menu.MenuID,
		Name:     menu.Name,
		Price:    menu.Price,
		Quantity: quantity,
	}
}
