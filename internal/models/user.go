package models

import "time"

// User is a floor employee who can act on the display: cook, expeditor or
// manager. Sign-in is a short numeric PIN typed on the touch screen.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"` // short login code shown on the PIN pad
	PINHash   string    `json:"-"`    // never expose in JSON
	Role      string    `json:"role"` // cook, expeditor or manager
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest represents the request body for PIN login
type LoginRequest struct {
	Code string `json:"code"`
	PIN  string `json:"pin"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
	PIN  string `json:"pin"`
	Role string `json:"role"`
}
