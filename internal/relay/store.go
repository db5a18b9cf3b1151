// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package relay

import (
	"context"
	"sync"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
)

// SentinelOrgID is the bucket for events whose webhook payload could not be
// attributed to an organization. They are misfiled rather than dropped and
// are only reachable through the administrative drain.
const SentinelOrgID = "unattributed"

const defaultMaxEvents = 1000

var _ StoreInterface = (*Store)(nil)

// Store is an in-memory, org partitioned, FIFO, drain-on-read mailbox of
// call lifecycle events. Undelivered events do not survive a process
// restart; delivery is at-least-once within a process lifetime.
//
// The isolation unit for locking is the organization: the store level lock
// only guards the org to mailbox mapping, so drains and enqueues for
// different orgs never block each other.
type Store struct {
	mu    sync.RWMutex
	boxes map[string]*mailbox

	maxEvents int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

type mailbox struct {
	mu     sync.Mutex
	events []*types.RelayEvent
}

func NewStore(maxEvents int, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Store {
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}

	return &Store{
		boxes:     make(map[string]*mailbox),
		maxEvents: maxEvents,
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

func (s *Store) Enqueue(ctx context.Context, orgID string, event *types.RelayEvent) {
	_, span := s.tracer.Start(ctx, "relay.Store.Enqueue")
	defer span.End()

	if orgID == "" {
		orgID = SentinelOrgID
	}

	box := s.box(orgID)

	box.mu.Lock()
	box.events = append(box.events, event)

	var evicted *types.RelayEvent
	if len(box.events) > s.maxEvents {
		evicted = box.events[0]
		box.events = box.events[1:]
	}
	depth := len(box.events)
	box.mu.Unlock()

	if evicted != nil {
		s.logger.Warnf("mailbox for org %s is full, evicted oldest event (call %s)", orgID, evicted.CallID)
		if err := s.monitor.IncDroppedEventsMetric(map[string]string{"org_id": orgID}); err != nil {
			s.logger.Errorf("failed to increment dropped events metric: %v", err)
		}
	}

	if err := s.monitor.IncRelayEventsMetric(map[string]string{"org_id": orgID}); err != nil {
		s.logger.Errorf("failed to increment relay events metric: %v", err)
	}
	if err := s.monitor.SetMailboxDepthMetric(map[string]string{"org_id": orgID}, float64(depth)); err != nil {
		s.logger.Errorf("failed to set mailbox depth metric: %v", err)
	}
}

func (s *Store) DrainAll(ctx context.Context, orgID string) []*types.RelayEvent {
	_, span := s.tracer.Start(ctx, "relay.Store.DrainAll")
	defer span.End()

	s.mu.RLock()
	box := s.boxes[orgID]
	s.mu.RUnlock()

	if box == nil {
		// Polling before any event has arrived is the common case.
		return []*types.RelayEvent{}
	}

	box.mu.Lock()
	events := box.events
	box.events = nil
	box.mu.Unlock()

	if err := s.monitor.SetMailboxDepthMetric(map[string]string{"org_id": orgID}, 0); err != nil {
		s.logger.Errorf("failed to set mailbox depth metric: %v", err)
	}

	if events == nil {
		return []*types.RelayEvent{}
	}
	return events
}

// box returns the org's mailbox, creating it lazily on first event.
func (s *Store) box(orgID string) *mailbox {
	s.mu.RLock()
	box := s.boxes[orgID]
	s.mu.RUnlock()

	if box != nil {
		return box
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if box = s.boxes[orgID]; box == nil {
		box = new(mailbox)
		s.boxes[orgID] = box
	}
	return box
}
