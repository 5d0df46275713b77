package domain

// Menu is a single menu entry offered by a store.
type Menu struct {
	MenuID      string `json:"menuId"`
	StoreID     string `json:"storeId"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

// MenuList is the response of GET /stores/{id}/menus.
type MenuList struct {
	Count   int    `json:"count"`
	Results []Menu `json:"results"`
}
