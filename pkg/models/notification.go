package models

import "time"

// Notification is an alert record fanned out to every user holding the
// view-notification permission.
type Notification struct {
	ID           int64     `json:"id,omitempty"`
	UserID       int64     `json:"user_id"`
	PoleRouterIP string    `json:"pole_router_ip"`
	PoleCode     string    `json:"pole_code"`
	Description  string    `json:"description"`
	Note         string    `json:"note,omitempty"`
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// User is the minimal projection of a user returned by the permission store.
type User struct {
	ID   int64  `json:"user_id"`
	Name string `json:"name,omitempty"`
}
