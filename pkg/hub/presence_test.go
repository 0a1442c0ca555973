package hub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

func TestPresenceCameraOfflineNotifiesExactlyOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := newQuietMockDB(ctrl)
	mockDB.EXPECT().
		UsersWithNotificationPermission(gomock.Any()).
		Return([]models.User{{ID: 1}, {ID: 2}}, nil).
		Times(1)
	mockDB.EXPECT().
		CreateNotifications(gomock.Any(), gomock.Len(2)).
		Return(nil).
		Times(1)

	h := New(mockDB, logger.NewTestLogger())

	pole := newFakeConn("pole-1")
	dash := newFakeConn("dash-1")
	h.AddConn(pole)
	h.AddConn(dash)

	ctx := context.Background()

	h.CameraOnline(ctx, pole, models.CameraPresencePayload{PoleCode: "P2", CameraIP: "10.11.5.144"})
	h.CameraOffline(ctx, pole, models.CameraPresencePayload{PoleCode: "P2", CameraIP: "10.11.5.144"})

	assert.Equal(t, 1, dash.received(models.EventNotification))

	// Repeated offline for an identity already offline is silent.
	h.CameraOffline(ctx, pole, models.CameraPresencePayload{PoleCode: "P2", CameraIP: "10.11.5.144"})

	assert.Equal(t, 1, dash.received(models.EventNotification))
}

func TestPresenceCameraOfflineNeverOnlineIsSilent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No recipient lookup and no notification rows expected.
	mockDB := newQuietMockDB(ctrl)

	h := New(mockDB, logger.NewTestLogger())

	pole := newFakeConn("pole-1")
	dash := newFakeConn("dash-1")
	h.AddConn(pole)
	h.AddConn(dash)

	h.CameraOffline(context.Background(), pole,
		models.CameraPresencePayload{PoleCode: "P2", CameraIP: "10.11.5.144"})

	assert.Zero(t, dash.received(models.EventNotification))
}

func TestPresenceDisconnectNotifiesPerLostIdentity(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// One pole plus one camera lost: two fan-outs.
	mockDB := newQuietMockDB(ctrl)
	mockDB.EXPECT().
		UsersWithNotificationPermission(gomock.Any()).
		Return([]models.User{{ID: 1}}, nil).
		Times(2)
	mockDB.EXPECT().
		CreateNotifications(gomock.Any(), gomock.Len(1)).
		Return(nil).
		Times(2)

	h := New(mockDB, logger.NewTestLogger())

	pole := newFakeConn("pole-1")
	dash := newFakeConn("dash-1")
	h.AddConn(pole)
	h.AddConn(dash)

	ctx := context.Background()

	h.PoleOnline(ctx, pole, models.OnlineDevicePayload{Code: "P2", RouterIP: "192.168.1.1"})
	h.CameraOnline(ctx, pole, models.CameraPresencePayload{PoleCode: "P2", CameraIP: "10.11.5.144"})

	h.RemoveConn(ctx, "pole-1")

	assert.Equal(t, 2, dash.received(models.EventNotification))
}

func TestPresencePoleOnlineBroadcastsPoleSnapshot(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := newQuietMockDB(ctrl)

	h := New(mockDB, logger.NewTestLogger())

	pole := newFakeConn("pole-1")
	dash := newFakeConn("dash-1")
	h.AddConn(pole)
	h.AddConn(dash)

	h.PoleOnline(context.Background(), pole,
		models.OnlineDevicePayload{Code: "P2", RouterIP: "192.168.1.1"})

	// Every observer gets the refreshed pole snapshot, announcer included.
	assert.Equal(t, 1, dash.received(models.EventStatusSnapshotPoles))
	assert.Equal(t, 1, pole.received(models.EventStatusSnapshotPoles))
}

func TestPresenceCameraOnlineBroadcastsCameraSnapshots(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := newQuietMockDB(ctrl)

	h := New(mockDB, logger.NewTestLogger())

	pole := newFakeConn("pole-1")
	dash := newFakeConn("dash-1")
	member := newFakeConn("dash-2")
	h.AddConn(pole)
	h.AddConn(dash)
	h.AddConn(member)
	h.JoinGroup(member, "P2")

	h.CameraOnline(context.Background(), pole,
		models.CameraPresencePayload{PoleCode: "P2", CameraIP: "10.11.5.144"})

	// The per-pole snapshot goes to the group only.
	assert.Equal(t, 1, member.received(models.EventStatusSnapshotCameras))
	assert.Zero(t, dash.received(models.EventStatusSnapshotCameras))

	// The fleet-wide snapshot and statistics go to everyone.
	assert.Equal(t, 1, dash.received(models.EventStatusSnapshotAllCameras))
	assert.Equal(t, 1, dash.received(models.EventStatisticsCameras))
}

func TestPresenceNotificationFailureDoesNotRevertTransition(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := newQuietMockDB(ctrl)
	mockDB.EXPECT().
		UsersWithNotificationPermission(gomock.Any()).
		Return(nil, errStoreDown)

	h := New(mockDB, logger.NewTestLogger())

	pole := newFakeConn("pole-1")
	h.AddConn(pole)

	ctx := context.Background()
	cam := models.CameraPresencePayload{PoleCode: "P2", CameraIP: "10.11.5.144"}

	h.CameraOnline(ctx, pole, cam)
	h.CameraOffline(ctx, pole, cam)

	// The registry transition stands despite the failed fan-out.
	assert.False(t, h.registry.Online(CameraIdentity{PoleCode: "P2", CameraIP: "10.11.5.144"}))
}
