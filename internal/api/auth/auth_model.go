package auth

import (
	"github.com/skillswaphq/skillswap/internal/api"
)

// RegisterRequest represents the register request body.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Location string `json:"location,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response body: the bearer token plus a
// public projection of the account. Never the password hash.
type LoginResponse struct {
	Token string          `json:"token"`
	User  api.UserSummary `json:"user"`
}
