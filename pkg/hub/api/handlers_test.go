package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/wassim-ahmad/onStreetCloud/pkg/db"
	"github.com/wassim-ahmad/onStreetCloud/pkg/hub"
	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

func newTestServer(t *testing.T, mockDB *db.MockService) *Server {
	t.Helper()

	h := hub.New(mockDB, logger.NewTestLogger())

	return NewServer(h, logger.NewTestLogger())
}

func TestGetDevices(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().PoleCount(gomock.Any()).Return(1, nil)
	mockDB.EXPECT().ListPoles(gomock.Any()).Return([]models.Pole{{ID: 1, Code: "P2"}}, nil)

	srv := newTestServer(t, mockDB)

	req := httptest.NewRequest(http.MethodGet, "/api/devices", http.NoBody)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var snap models.StatusSnapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))

	assert.Equal(t, 1, snap.Total)
	assert.Zero(t, snap.Online)
	assert.Equal(t, 1, snap.Offline)
}

func TestGetCamerasByPole(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().CameraCountByPoleCode(gomock.Any(), "P2").Return(2, nil)
	mockDB.EXPECT().ListCamerasByPoleCode(gomock.Any(), "P2").Return([]models.Camera{
		{ID: 1, PoleCode: "P2", CameraIP: "10.11.5.144"},
		{ID: 2, PoleCode: "P2", CameraIP: "10.11.5.145"},
	}, nil)

	srv := newTestServer(t, mockDB)

	req := httptest.NewRequest(http.MethodGet, "/api/cameras/P2", http.NoBody)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var snap models.StatusSnapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))

	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, 2, snap.Offline)
}

func TestGetCameraStatistics(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().CameraCount(gomock.Any()).Return(3, nil)
	mockDB.EXPECT().ListCameras(gomock.Any()).Return(nil, nil)

	srv := newTestServer(t, mockDB)

	req := httptest.NewRequest(http.MethodGet, "/api/statistics/cameras", http.NoBody)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"totalCount":3,"onlineCount":0}`, rr.Body.String())
}

func TestExecuteCameraCommandUndelivered(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().
		CreatePendingCommand(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, pending *models.PendingCommand) error {
			pending.ID = "pend-1"
			return nil
		})

	srv := newTestServer(t, mockDB)

	body := `{"pole_id":7,"pole_code":"P2","type":"create","camera_ip":"10.11.5.144","number_of_parking":4}`

	req := httptest.NewRequest(http.MethodPost, "/api/cameras/execute", strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp ExecuteResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.False(t, resp.Delivered)
	assert.Equal(t, "pend-1", resp.PendingID)
}

func TestExecuteCameraCommandRejectsBadRequests(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := newTestServer(t, db.NewMockService(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/cameras/execute",
		bytes.NewReader([]byte("not json")))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Valid JSON, invalid command.
	req = httptest.NewRequest(http.MethodPost, "/api/cameras/execute",
		strings.NewReader(`{"pole_code":"P2","type":"warp","camera_ip":"10.11.5.144"}`))
	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestResyncUnknownPendingCommand(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().
		GetPendingCommand(gomock.Any(), "nope").
		Return(nil, db.ErrPendingCommandNotFound)

	srv := newTestServer(t, mockDB)

	req := httptest.NewRequest(http.MethodPost, "/api/cameras/execute/nope/resync", http.NoBody)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetPendingCommandsEmptyListIsJSONArray(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().ListPendingCommands(gomock.Any()).Return(nil, nil)

	srv := newTestServer(t, mockDB)

	req := httptest.NewRequest(http.MethodGet, "/api/cameras/execute/pending", http.NoBody)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestAPIKeyGuardsRestRoutes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := db.NewMockService(ctrl)
	mockDB.EXPECT().PoleCount(gomock.Any()).Return(0, nil).AnyTimes()
	mockDB.EXPECT().ListPoles(gomock.Any()).Return(nil, nil).AnyTimes()

	h := hub.New(mockDB, logger.NewTestLogger())
	srv := NewServer(h, logger.NewTestLogger(), WithAPIKey("secret"))

	req := httptest.NewRequest(http.MethodGet, "/api/devices", http.NoBody)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/devices", http.NoBody)
	req.Header.Set("X-API-Key", "secret")
	rr = httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
