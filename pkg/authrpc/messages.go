// Package authrpc holds the Connect bindings for the authgate.v1.AuthService
// API: message types, procedure names, the JSON codec and the handler and
// client constructors.
package authrpc

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest signs in to an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public view of an account.
type User struct {
	Id        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// GetCurrentUserResponse describes the bearer of the request's token.
type GetCurrentUserResponse struct {
	User *User `json:"user"`
}
