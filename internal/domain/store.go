package domain

// StoreRef is the minimal store projection carried by a cart. A non-empty
// cart always references exactly one store.
type StoreRef struct {
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
}

// Store is the full store entity returned by the backend.
type Store struct {
	StoreID     string `json:"storeId"`
	Registrant  string `json:"registrant"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// Ref returns the cart-facing projection of the store.
func (s Store) Ref() StoreRef {
	return StoreRef{StoreID: s.StoreID, Name: s.Name}
}

// StoreList is a paged store search result.
type StoreList struct {
	Count      int     `json:"count"`
	PageSize   int     `json:"pageSize"`
	PageNumber int     `json:"pageNumber"`
	HasNext    bool    `json:"hasNext"`
	Results    []Store `json:"results"`
}
