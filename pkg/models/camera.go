package models

// Camera represents a camera catalog entry, scoped to its hosting pole.
type Camera struct {
	ID            int64  `json:"id"`
	PoleID        int64  `json:"pole_id"`
	PoleCode      string `json:"pole_code"`
	CameraIP      string `json:"camera_ip"`
	Name          string `json:"name,omitempty"`
	ParkingSpaces int    `json:"number_of_parking"`
	Deleted       bool   `json:"deleted,omitempty"`
}

// CameraWithStatus is a camera joined against live registry membership.
type CameraWithStatus struct {
	Camera
	Status int `json:"status"`
}

// CameraStatistics summarizes the camera fleet for the statistics dashboard.
type CameraStatistics struct {
	TotalCount  int `json:"totalCount"`
	OnlineCount int `json:"onlineCount"`
}
