package domain

// Reservation is a booking of a store for a given date and hour.
type Reservation struct {
	ReservationID   string `json:"reservationId"`
	StoreID         string `json:"storeId"`
	Registrant      string `json:"registrant"`
	ReservationName string `json:"reservationName"`
	Date            string `json:"date"`
	Hour            int    `json:"hour"`
}

// ReservationMenu is one menu line attached to a reservation request.
type ReservationMenu struct {
	MenuID   string `json:"menuId"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// ReservationList is a paged reservation search result.
type ReservationList struct {
	Count      int           `json:"count"`
	PageSize   int           `json:"pageSize"`
	PageNumber int           `json:"pageNumber"`
	HasNext    bool          `json:"hasNext"`
	Results    []Reservation `json:"results"`
}
