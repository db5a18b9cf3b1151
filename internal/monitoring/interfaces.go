// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package monitoring

type MonitorInterface interface {
	GetService() string
	SetResponseTimeMetric(map[string]string, float64) error
	SetDependencyAvailability(map[string]string, float64) error
	SetMailboxDepthMetric(map[string]string, float64) error
	IncRelayEventsMetric(map[string]string) error
	IncDroppedEventsMetric(map[string]string) error
}
