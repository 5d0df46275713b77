package domain

// CartItem is one selected menu entry. Quantity is always at least 1; a
// quantity of zero means removal and is never stored.
type CartItem struct {
	MenuID   string `json:"menuId"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// Cart holds the menu selections pending reservation. Items is non-empty
// exactly when Store is set, and every item belongs to that store.
type Cart struct {
	Store *StoreRef  `json:"store,omitempty"`
	Items []CartItem `json:"items"`
}

// Empty reports whether the cart holds no items.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

// Total returns the price of the cart, summed over item price times quantity.
func (c Cart) Total() int {
	total := 0
	for _, item := range c.Items {
		total += item.Price * item.Quantity
	}
	return total
}

// Clone returns a deep copy so callers can hand carts out without sharing
// the item slice.
func (c Cart) Clone() Cart {
	out := Cart{Items: make([]CartItem, len(c.Items))}
	copy(out.Items, c.Items)
	if c.Store != nil {
		ref := *c.Store
		out.Store = &ref
	}
	return out
}
