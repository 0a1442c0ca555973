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
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/wassim-ahmad/onStreetCloud/pkg/logger"
	"github.com/wassim-ahmad/onStreetCloud/pkg/models"
)

const (
	defaultResourcePeriod = 30 * time.Second
	cpuSampleInterval     = time.Second
)

// resourceSample is one point-in-time reading of the pole host.
type resourceSample struct {
	cpuPercent    float64
	memoryPercent float64
	diskPercent   float64
	uptimeSeconds uint64
}

// ResourceMonitor samples host CPU, memory, and disk on a fixed period so a
// resource request can be answered from the latest reading instead of
// blocking the read loop on a CPU sample window.
type ResourceMonitor struct {
	period time.Duration
	logger logger.Logger

	mu     sync.RWMutex
	latest resourceSample
}

// NewResourceMonitor creates a monitor. A zero period selects the default.
func NewResourceMonitor(period time.Duration, log logger.Logger) *ResourceMonitor {
	if period <= 0 {
		period = defaultResourcePeriod
	}

	return &ResourceMonitor{period: period, logger: log}
}

// Run samples until the context is canceled. The first sample is taken
// immediately so early resource requests see real numbers.
func (m *ResourceMonitor) Run(ctx context.Context) {
	m.sample(ctx)

	ticker := time.NewTicker(m.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sample(ctx)
		}
	}
}

// Latest returns the most recent reading.
func (m *ResourceMonitor) Latest() resourceSample {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.latest
}

func (m *ResourceMonitor) sample(ctx context.Context) {
	var s resourceSample

	if percents, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false); err != nil {
		m.logger.Debug().Err(err).Msg("cpu sample failed")
	} else if len(percents) > 0 {
		s.cpuPercent = percents[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		m.logger.Debug().Err(err).Msg("memory sample failed")
	} else {
		s.memoryPercent = vm.UsedPercent
	}

	if usage, err := disk.UsageWithContext(ctx, "/"); err != nil {
		m.logger.Debug().Err(err).Msg("disk sample failed")
	} else {
		s.diskPercent = usage.UsedPercent
	}

	if uptime, err := host.UptimeWithContext(ctx); err != nil {
		m.logger.Debug().Err(err).Msg("uptime read failed")
	} else {
		s.uptimeSeconds = uptime
	}

	m.mu.Lock()
	m.latest = s
	m.mu.Unlock()
}

// report shapes the latest sample as a wire payload addressed back to the
// requesting connection.
func (m *ResourceMonitor) report(poleCode, socketID string) models.ServerResourcesPayload {
	s := m.Latest()

	return models.ServerResourcesPayload{
		PoleCode:      poleCode,
		SocketID:      socketID,
		CPUPercent:    s.cpuPercent,
		MemoryPercent: s.memoryPercent,
		DiskPercent:   s.diskPercent,
		UptimeSeconds: s.uptimeSeconds,
	}
}
