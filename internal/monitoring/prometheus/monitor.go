// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
)

var _ monitoring.MonitorInterface = (*Monitor)(nil)

type Monitor struct {
	service string

	responseTime           *prometheus.HistogramVec
	dependencyAvailability *prometheus.GaugeVec
	mailboxDepth           *prometheus.GaugeVec
	relayEvents            *prometheus.CounterVec
	droppedEvents          *prometheus.CounterVec

	logger logging.LoggerInterface
}

func NewMonitor(service string, logger logging.LoggerInterface) *Monitor {
	m := new(Monitor)

	m.service = service
	m.logger = logger

	m.responseTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_time_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	m.dependencyAvailability = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dependency_available",
			Help: "Whether the last interaction with a dependency succeeded (1) or not (0).",
		},
		[]string{"dependency"},
	)

	m.mailboxDepth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "relay_mailbox_depth",
			Help: "Number of undelivered call events buffered per organization.",
		},
		[]string{"org_id"},
	)

	m.relayEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_total",
			Help: "Call events accepted by the relay store.",
		},
		[]string{"org_id"},
	)

	m.droppedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_events_dropped_total",
			Help: "Call events evicted from a full mailbox before delivery.",
		},
		[]string{"org_id"},
	)

	return m
}

func (m *Monitor) GetService() string {
	return m.service
}

func (m *Monitor) SetResponseTimeMetric(tags map[string]string, v float64) error {
	metric, err := m.responseTime.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Observe(v)
	return nil
}

func (m *Monitor) SetDependencyAvailability(tags map[string]string, v float64) error {
	metric, err := m.dependencyAvailability.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Set(v)
	return nil
}

func (m *Monitor) SetMailboxDepthMetric(tags map[string]string, v float64) error {
	metric, err := m.mailboxDepth.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Set(v)
	return nil
}

func (m *Monitor) IncRelayEventsMetric(tags map[string]string) error {
	metric, err := m.relayEvents.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Inc()
	return nil
}

func (m *Monitor) IncDroppedEventsMetric(tags map[string]string) error {
	metric, err := m.droppedEvents.GetMetricWith(tags)
	if err != nil {
		return err
	}

	metric.Inc()
	return nil
}
