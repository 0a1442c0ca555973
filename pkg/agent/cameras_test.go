package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

func push(op models.CommandOp, ip, oldIP string, spaces int) *models.ExecuteCameraPayload {
	return &models.ExecuteCameraPayload{
		Data: models.CameraCommandData{
			PoleCode:      "P2",
			CameraIP:      ip,
			ParkingSpaces: spaces,
		},
		Type:        op,
		OldCameraID: oldIP,
	}
}

func TestCameraTableApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seed    []models.AgentCamera
		pushes  []*models.ExecuteCameraPayload
		want    []bool
		active  []string
		missing []string
	}{
		{
			name:   "create adds camera",
			pushes: []*models.ExecuteCameraPayload{push(models.CommandCreate, "10.11.5.144", "", 4)},
			want:   []bool{true},
			active: []string{"10.11.5.144"},
		},
		{
			name: "edit replaces old camera",
			seed: []models.AgentCamera{{CameraIP: "10.11.5.144"}},
			pushes: []*models.ExecuteCameraPayload{
				push(models.CommandEdit, "10.11.5.150", "10.11.5.144", 6),
			},
			want:    []bool{true},
			active:  []string{"10.11.5.150"},
			missing: []string{"10.11.5.144"},
		},
		{
			name:    "edit of unknown camera fails",
			pushes:  []*models.ExecuteCameraPayload{push(models.CommandEdit, "10.11.5.150", "10.11.5.144", 6)},
			want:    []bool{false},
			missing: []string{"10.11.5.150"},
		},
		{
			name:    "delete removes camera",
			seed:    []models.AgentCamera{{CameraIP: "10.11.5.144"}},
			pushes:  []*models.ExecuteCameraPayload{push(models.CommandDelete, "10.11.5.144", "", 0)},
			want:    []bool{true},
			missing: []string{"10.11.5.144"},
		},
		{
			name:   "delete of unknown camera fails",
			pushes: []*models.ExecuteCameraPayload{push(models.CommandDelete, "10.11.5.144", "", 0)},
			want:   []bool{false},
		},
		{
			name: "restore brings deleted camera back",
			seed: []models.AgentCamera{{CameraIP: "10.11.5.144"}},
			pushes: []*models.ExecuteCameraPayload{
				push(models.CommandDelete, "10.11.5.144", "", 0),
				push(models.CommandRestore, "10.11.5.144", "", 0),
			},
			want:   []bool{true, true},
			active: []string{"10.11.5.144"},
		},
		{
			name:   "restore without prior delete fails",
			pushes: []*models.ExecuteCameraPayload{push(models.CommandRestore, "10.11.5.144", "", 0)},
			want:   []bool{false},
		},
		{
			name:   "unknown operation fails",
			pushes: []*models.ExecuteCameraPayload{push("warp", "10.11.5.144", "", 0)},
			want:   []bool{false},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			table := NewCameraTable(tt.seed)

			for i, p := range tt.pushes {
				assert.Equal(t, tt.want[i], table.Apply(p), "push %d", i)
			}

			for _, ip := range tt.active {
				assert.True(t, table.Has(ip), "expected %s active", ip)
			}

			for _, ip := range tt.missing {
				assert.False(t, table.Has(ip), "expected %s gone", ip)
			}
		})
	}
}
