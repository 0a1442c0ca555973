package hub

import (
	"context"
	"fmt"

	"github.com/wassim-ahmad/onStreetCloud/pkg/db"
	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// Notifier fans presence alerts out to every user holding the
// view-notification permission and pushes a live notification event to all
// observers. Store failures are logged and swallowed: a failed notification
// must never abort or reverse the presence transition that triggered it.
type Notifier struct {
	db          db.Service
	broadcaster Broadcaster
	logger      logger.Logger
}

// NewNotifier creates the notification side effect.
func NewNotifier(database db.Service, broadcaster Broadcaster, log logger.Logger) *Notifier {
	return &Notifier{db: database, broadcaster: broadcaster, logger: log}
}

// CameraDisconnected records a live camera disconnect. Called only for
// cameras previously observed online, never for boot-time absence.
func (n *Notifier) CameraDisconnected(ctx context.Context, cam CameraIdentity, routerIP, fileServerID string) {
	note := fmt.Sprintf("file_server_id: %s camera ip: %s", fileServerID, cam.CameraIP)
	n.fanOut(ctx, routerIP, cam.PoleCode, "camera disconnected", note,
		fmt.Sprintf("file_server_id: %s", fileServerID))
}

// PoleDisconnected records a live pole disconnect.
func (n *Notifier) PoleDisconnected(ctx context.Context, pole PoleIdentity) {
	note := fmt.Sprintf("file_server_id: %s", pole.FileServerID)
	n.fanOut(ctx, pole.RouterIP, pole.Code, "device disconnected", note, note)
}

// Alert records an application-level alert raised by a pole and relays it to
// all observers.
func (n *Notifier) Alert(ctx context.Context, alert models.AlertPayload) {
	note := fmt.Sprintf("%s >> %s", alert.FileServerID, alert.Message)
	n.fanOut(ctx, alert.PoleRouterIP, alert.PoleCode, alert.Title, note, alert.Message)
}

func (n *Notifier) fanOut(ctx context.Context, routerIP, poleCode, description, note, message string) {
	users, err := n.db.UsersWithNotificationPermission(ctx)
	if err != nil {
		n.logger.Error().
			Err(err).
			Str("pole_code", poleCode).
			Msg("failed to resolve notification recipients")

		return
	}

	if len(users) > 0 {
		records := make([]*models.Notification, 0, len(users))

		for _, u := range users {
			records = append(records, &models.Notification{
				UserID:       u.ID,
				PoleRouterIP: routerIP,
				PoleCode:     poleCode,
				Description:  description,
				Note:         note,
			})
		}

		if err := n.db.CreateNotifications(ctx, records); err != nil {
			n.logger.Error().
				Err(err).
				Str("pole_code", poleCode).
				Str("description", description).
				Msg("failed to create notifications")

			return
		}
	}

	n.broadcaster.BroadcastAll(models.EventNotification, models.NotificationEventPayload{
		Title:   description,
		Message: message,
	})
}
