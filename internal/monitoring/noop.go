// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

type NoopMonitor struct {
	service string
}

func NewNoopMonitor(service string) *NoopMonitor {
	return &NoopMonitor{service: service}
}

func (m *NoopMonitor) GetService() string {
	return m.service
}

func (m *NoopMonitor) SetResponseTimeMetric(map[string]string, float64) error {
	return nil
}

func (m *NoopMonitor) SetDependencyAvailability(map[string]string, float64) error {
	return nil
}

func (m *NoopMonitor) SetMailboxDepthMetric(map[string]string, float64) error {
	return nil
}

func (m *NoopMonitor) IncRelayEventsMetric(map[string]string) error {
	return nil
}

func (m *NoopMonitor) IncDroppedEventsMetric(map[string]string) error {
	return nil
}
