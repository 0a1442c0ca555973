/*
 * Copyright 2026 onStreetCloud Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package agent

import (
	"sync"

	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

// CameraTable is the agent's in-memory camera inventory, keyed by camera IP.
// Deleted cameras are kept aside so a restore can bring them back.
type CameraTable struct {
	mu      sync.Mutex
	active  map[string]models.AgentCamera
	deleted map[string]models.AgentCamera
}

// NewCameraTable seeds the table from the agent configuration.
func NewCameraTable(cameras []models.AgentCamera) *CameraTable {
	t := &CameraTable{
		active:  make(map[string]models.AgentCamera),
		deleted: make(map[string]models.AgentCamera),
	}

	for _, c := range cameras {
		t.active[c.CameraIP] = c
	}

	return t
}

// Active returns the current camera IPs in no particular order.
func (t *CameraTable) Active() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ips := make([]string, 0, len(t.active))
	for ip := range t.active {
		ips = append(ips, ip)
	}

	return ips
}

// Has reports whether a camera IP is currently active.
func (t *CameraTable) Has(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.active[ip]

	return ok
}

// Apply executes one pushed command against the table and reports whether it
// took effect. The result becomes the acknowledgement value sent back to the
// cloud, so a command that cannot apply must return false.
func (t *CameraTable) Apply(push *models.ExecuteCameraPayload) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	ip := push.Data.CameraIP

	switch push.Type {
	case models.CommandCreate:
		t.active[ip] = models.AgentCamera{
			CameraIP:      ip,
			ParkingSpaces: push.Data.ParkingSpaces,
		}

		return true
	case models.CommandEdit:
		if _, ok := t.active[push.OldCameraID]; !ok {
			return false
		}

		delete(t.active, push.OldCameraID)
		t.active[ip] = models.AgentCamera{
			CameraIP:      ip,
			ParkingSpaces: push.Data.ParkingSpaces,
		}

		return true
	case models.CommandDelete:
		cam, ok := t.active[ip]
		if !ok {
			return false
		}

		delete(t.active, ip)
		t.deleted[ip] = cam

		return true
	case models.CommandRestore:
		cam, ok := t.deleted[ip]
		if !ok {
			return false
		}

		delete(t.deleted, ip)
		t.active[ip] = cam

		return true
	default:
		return false
	}
}
