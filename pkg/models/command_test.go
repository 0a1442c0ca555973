package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraCommandValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cmd     CameraCommand
		wantErr error
	}{
		{
			name: "create",
			cmd:  CameraCommand{PoleCode: "P2", Op: CommandCreate, CameraIP: "10.11.5.144"},
		},
		{
			name: "edit with old camera",
			cmd: CameraCommand{
				PoleCode: "P2", Op: CommandEdit,
				CameraIP: "10.11.5.145", OldCameraIP: "10.11.5.144",
			},
		},
		{
			name: "delete",
			cmd:  CameraCommand{PoleCode: "P2", Op: CommandDelete, CameraIP: "10.11.5.144"},
		},
		{
			name: "restore",
			cmd:  CameraCommand{PoleCode: "P2", Op: CommandRestore, CameraIP: "10.11.5.144"},
		},
		{
			name:    "unknown op",
			cmd:     CameraCommand{PoleCode: "P2", Op: "upgrade", CameraIP: "10.11.5.144"},
			wantErr: ErrUnknownCommandOp,
		},
		{
			name:    "missing pole code",
			cmd:     CameraCommand{Op: CommandCreate, CameraIP: "10.11.5.144"},
			wantErr: ErrMissingPoleCode,
		},
		{
			name:    "missing camera ip",
			cmd:     CameraCommand{PoleCode: "P2", Op: CommandCreate},
			wantErr: ErrMissingCameraIP,
		},
		{
			name:    "edit without old camera",
			cmd:     CameraCommand{PoleCode: "P2", Op: CommandEdit, CameraIP: "10.11.5.145"},
			wantErr: ErrMissingOldCameraIP,
		},
		{
			name: "old camera on create",
			cmd: CameraCommand{
				PoleCode: "P2", Op: CommandCreate,
				CameraIP: "10.11.5.145", OldCameraIP: "10.11.5.144",
			},
			wantErr: ErrUnexpectedOldCamera,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cmd.Validate()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestPendingCommandRoundTrip(t *testing.T) {
	t.Parallel()

	pending := PendingCommand{
		ID:            "b3c1",
		PoleID:        7,
		PoleCode:      "P2",
		Op:            CommandEdit,
		CameraIP:      "10.11.5.145",
		OldCameraIP:   "10.11.5.144",
		ParkingSpaces: 4,
	}

	cmd := pending.Command()
	require.NoError(t, cmd.Validate())
	assert.Equal(t, pending.PoleCode, cmd.PoleCode)
	assert.Equal(t, pending.OldCameraIP, cmd.OldCameraIP)
}

func TestAckValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want bool
	}{
		{"ack true", `[true]`, true},
		{"ack false", `[false]`, false},
		{"empty array", `[]`, false},
		{"non boolean first element", `["ok", true]`, false},
		{"not an array", `true`, false},
		{"garbage", `{`, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AckValue(json.RawMessage(tt.data)))
		})
	}
}

func TestExecutePayloadOmitsOldCameraOutsideEdit(t *testing.T) {
	t.Parallel()

	cmd := CameraCommand{PoleID: 7, PoleCode: "P2", Op: CommandCreate, CameraIP: "10.11.5.144"}

	raw, err := json.Marshal(cmd.ExecutePayload())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "old_camera_id")
}
