package models

import "encoding/json"

// Wire event names. Inbound events arrive from poles and dashboards over the
// WebSocket channel; outbound events are pushed by the cloud.
const (
	// Inbound.
	EventOnlineDevice    = "onlineDevice"
	EventCameraOnline    = "cameraOnline"
	EventCameraOffline   = "cameraOffline"
	EventJoinPoleGroup   = "joinPoleGroup"
	EventOrderResources  = "orderResources"
	EventServerResources = "serverResources"
	EventRestartOrder    = "restartOrder"
	EventAlert           = "alert"
	EventAck             = "ack"

	// Outbound.
	EventSocketID                 = "socketID"
	EventStatusSnapshotPoles      = "statusSnapshotPoles"
	EventStatusSnapshotCameras    = "statusSnapshotCameras"
	EventStatusSnapshotAllCameras = "statusSnapshotAllCameras"
	EventStatisticsCameras        = "statisticsCameras"
	EventExecuteCameraCommand     = "executeCameraCommand"
	EventGetServerResources       = "getServerResources"
	EventShowServerResources      = "showServerResources"
	EventRestart                  = "restart"
	EventNotification             = "notification"
)

// Envelope frames every message on the bidirectional channel. A non-zero
// AckID on an outbound event requests an "ack" reply carrying the same id and
// an array whose first element is the boolean acknowledgement value.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
	AckID uint64          `json:"ack_id,omitempty"`
}

// NewEnvelope marshals data into an Envelope for the given event.
func NewEnvelope(event string, data interface{}) (*Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Envelope{Event: event, Data: raw}, nil
}

// OnlineDevicePayload announces a pole identity after transport-level connect.
type OnlineDevicePayload struct {
	Code         string `json:"code"`
	RouterIP     string `json:"router_ip"`
	FileServerID string `json:"file_server_id,omitempty"`
}

// CameraPresencePayload announces one camera flipping online or offline.
type CameraPresencePayload struct {
	PoleCode string `json:"pole_code"`
	CameraIP string `json:"camera_ip"`
}

// JoinPoleGroupPayload subscribes a dashboard connection to one pole's group.
type JoinPoleGroupPayload struct {
	PoleCode string `json:"pole_code"`
}

// OrderResourcesPayload asks a pole group for a resource report, addressed
// back to the requesting connection.
type OrderResourcesPayload struct {
	PoleCode string `json:"pole_code"`
	SocketID string `json:"socket_id"`
}

// ServerResourcesPayload is a pole's resource report, relayed to the
// connection named by SocketID.
type ServerResourcesPayload struct {
	PoleCode      string  `json:"pole_code"`
	SocketID      string  `json:"socket_id"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	DiskPercent   float64 `json:"disk_percent"`
	UptimeSeconds uint64  `json:"uptime_seconds,omitempty"`
}

// RestartOrderPayload asks every connection in a pole's group to restart.
type RestartOrderPayload struct {
	PoleCode string `json:"pole_code"`
}

// AlertPayload is an application-level alert raised by a pole.
type AlertPayload struct {
	PoleRouterIP string `json:"pole_router_ip"`
	PoleCode     string `json:"pole_code"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	FileServerID string `json:"file_server_id,omitempty"`
	CameraIP     string `json:"camera_ip,omitempty"`
}

// SocketIDPayload returns the server-assigned connection id on connect.
type SocketIDPayload struct {
	ID string `json:"id"`
}

// NotificationEventPayload is the live notification pushed to observers.
type NotificationEventPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// ExecuteCameraPayload is the command push sent to a pole group. The shape
// mirrors the administrative integration data: the camera fields under "data",
// the operation under "type", and the prior camera under "old_camera_id" for
// edits.
type ExecuteCameraPayload struct {
	Data        CameraCommandData `json:"data"`
	Type        CommandOp         `json:"type"`
	OldCameraID string            `json:"old_camera_id,omitempty"`
}

// CameraCommandData carries the camera fields of a command push.
type CameraCommandData struct {
	PoleID        int64  `json:"pole_id"`
	PoleCode      string `json:"pole_code"`
	CameraIP      string `json:"camera_ip"`
	ParkingSpaces int    `json:"number_of_parking"`
}

// ExecutePayload converts a validated command into its wire shape.
func (c *CameraCommand) ExecutePayload() ExecuteCameraPayload {
	return ExecuteCameraPayload{
		Data: CameraCommandData{
			PoleID:        c.PoleID,
			PoleCode:      c.PoleCode,
			CameraIP:      c.CameraIP,
			ParkingSpaces: c.ParkingSpaces,
		},
		Type:        c.Op,
		OldCameraID: c.OldCameraIP,
	}
}

// AckValue extracts the boolean acknowledgement from an ack reply's data
// array. A missing or non-boolean first element counts as a negative ack.
func AckValue(data json.RawMessage) bool {
	var values []interface{}
	if err := json.Unmarshal(data, &values); err != nil || len(values) == 0 {
		return false
	}

	ok, isBool := values[0].(bool)

	return isBool && ok
}
