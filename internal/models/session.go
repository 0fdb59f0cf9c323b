package models

import "time"

// Session is what the gateway remembers about a signed-in user between
// requests: the company they manage and their default address.
type Session struct {
	UserID         string    `json:"user_id"`
	CompanyID      int64     `json:"company_id,omitempty"`
	Role           string    `json:"role,omitempty"`
	DefaultAddress string    `json:"default_address,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}
