package dto

import "time"

// LoginRequest payload.
type LoginRequest struct {
	Operator string `json:"operator"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Operator  string    `json:"operator"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
