package domain

// AuthUser is the identity projection decoded from an access token.
type AuthUser struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

// Session is the UI-facing view of the current authentication state. It is
// recomputed from the access token on every token change and never persisted
// independently of the token.
type Session struct {
	User        AuthUser
	AccessToken string
}

// User is the full profile returned by GET /users/{username}.
type User struct {
	Username    string `json:"username"`
	Nickname    string `json:"nickname"`
	Description string `json:"description"`
	SignUpDate  string `json:"signUpDate"`
}
