package dto

// ErrorRes is the common error response body.
type ErrorRes struct {
	Error string `json:"error"`
}

// TokenRes is returned by /login on successful authentication.
type TokenRes struct {
	Token string `json:"token"`
}

// UserRes is returned by /signup. It never includes the password hash.
type UserRes struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}
