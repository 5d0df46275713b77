package domain

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Request payloads mirror the backend API contract. Validate methods apply
// the same field bounds the backend enforces, so obviously bad input fails
// before a network round trip.

// SignInRequest is the body of POST /sign-in.
type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks required fields.
func (r SignInRequest) Validate() error {
	return wrapRuleErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	))
}

// SignUpRequest is the body of POST /sign-up.
type SignUpRequest struct {
	Username             string `json:"username"`
	Nickname             string `json:"nickname"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// Validate applies the account field bounds and the confirmation match rule.
func (r SignUpRequest) Validate() error {
	return wrapRuleErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(4, 25)),
		validation.Field(&r.Nickname, validation.Required, validation.Length(2, 30)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 50)),
		validation.Field(&r.PasswordConfirmation, validation.By(matchesString(r.Password))),
	))
}

// UserUpdateRequest is the body of PUT /users.
type UserUpdateRequest struct {
	Nickname    string `json:"nickname"`
	Description string `json:"description"`
}

// Validate applies the nickname bounds.
func (r UserUpdateRequest) Validate() error {
	return wrapRuleErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Nickname, validation.Required, validation.Length(2, 30)),
	))
}

// PasswordUpdateRequest is the body of PUT /users/password.
type PasswordUpdateRequest struct {
	OldPassword  string `json:"oldPassword"`
	NewPassword  string `json:"newPassword"`
	Confirmation string `json:"confirmation"`
}

// Validate applies the password bounds and the confirmation match rule.
func (r PasswordUpdateRequest) Validate() error {
	return wrapRuleErrors(validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(8, 50)),
		validation.Field(&r.Confirmation, validation.By(matchesString(r.NewPassword))),
	))
}

// UserDeleteRequest is the body of DELETE /users.
type UserDeleteRequest struct {
	Password string `json:"password"`
}

// StoreCreateRequest is the body of POST /stores. The same shape is used
// for PUT /stores/{id}.
type StoreCreateRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// Validate checks required fields.
func (r StoreCreateRequest) Validate() error {
	return wrapRuleErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Address, validation.Required),
	))
}

// StoreSearchParams filters GET /stores.
type StoreSearchParams struct {
	Registrant string
	Query      string
}

// MenuCreateRequest is the body of POST /stores/{id}/menus and
// PUT /menus/{id}.
type MenuCreateRequest struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

// Validate checks required fields and the non-negative price rule.
func (r MenuCreateRequest) Validate() error {
	return wrapRuleErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Price, validation.Min(0)),
	))
}

// ReservationCreateRequest is the body of POST /reservations.
type ReservationCreateRequest struct {
	StoreID         string            `json:"storeId"`
	ReservationName string            `json:"reservationName"`
	Date            string            `json:"date"`
	Hour            int               `json:"hour"`
	Menus           []ReservationMenu `json:"menus"`
}

// Validate checks required fields and the hour range.
func (r ReservationCreateRequest) Validate() error {
	return wrapRuleErrors(validation.ValidateStruct(&r,
		validation.Field(&r.StoreID, validation.Required),
		validation.Field(&r.ReservationName, validation.Required),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Hour, validation.Min(0), validation.Max(23)),
	))
}

// ReservationUpdateRequest is the body of PUT /reservations/{id}.
type ReservationUpdateRequest struct {
	ReservationName string `json:"reservationName"`
	Date            string `json:"date"`
	Hour            int    `json:"hour"`
}

// ReservationSearchParams filters GET /reservations.
type ReservationSearchParams struct {
	StoreID string
	Date    string
}
