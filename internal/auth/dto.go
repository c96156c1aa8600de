package auth

import (
	"time"

	"github.com/HUNTSTAR747/referred-space-server/internal/users"
)

// SignupRequest contains the payload required to create an account.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignupResponse confirms the created account.
type SignupResponse struct {
	User    *users.UserDTO `json:"user"`
	Message string         `json:"message"`
}

// LoginRequest contains the credentials for an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionDTO is the token pair handed to a logged-in client.
type SessionDTO struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginResponse returns the account plus its session tokens.
type LoginResponse struct {
	User    *users.UserDTO `json:"user"`
	Session SessionDTO     `json:"session"`
}
