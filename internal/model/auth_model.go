package model

import "time"

// Session scopes per-shopper state (cart, profile, product draft).
// It is created on the first request without a session id and lives
// as long as the client keeps sending the id back.
type Session struct {
	ID    string `json:"session_id"`
	Admin bool   `json:"-"`
}

// AdminToken is returned after a successful admin login.
type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
