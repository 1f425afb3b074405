package auth

import "github.com/jerseyforge/jerseyforge-backend/internal/users"

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8,max=72"`
	FirstName    string  `json:"firstName" validate:"required,max=100"`
	LastName     string  `json:"lastName" validate:"required,max=100"`
	MobileNumber *string `json:"mobileNumber,omitempty" validate:"omitempty,max=32"`
	Username     *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
}

// LoginRequest is the credential payload for both user and admin login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse pairs the user with a freshly minted access token.
type AuthResponse struct {
	User  *users.UserDTO `json:"user"`
	Token string         `json:"token"`
}
