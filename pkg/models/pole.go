package models

// Pole represents a street pole catalog entry: an edge gateway deployed at a
// physical site, hosting one or more cameras.
type Pole struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name,omitempty"`
	RouterIP     string `json:"router_ip"`
	FileServerID string `json:"file_server_id,omitempty"`
	Location     string `json:"location,omitempty"`
}

// PoleWithStatus is a catalog entry joined against live registry membership.
// Status is derived on every query and never persisted.
type PoleWithStatus struct {
	Pole
	Status int `json:"status"`
}
