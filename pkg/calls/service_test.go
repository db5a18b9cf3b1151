// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package calls

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/voicedesk/call-console/internal/backend"
	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/relay"
	"github.com/voicedesk/call-console/internal/tracing"
)

type stubBackend struct {
	outcome backend.Outcome
	calls   []string
}

func (s *stubBackend) Hangup(ctx context.Context, callID string) backend.Outcome {
	s.calls = append(s.calls, callID)
	return s.outcome
}

func newTestService(b backend.ClientInterface) *Service {
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("call-console")
	logger := logging.NewNoopLogger()
	store := relay.NewStore(0, tracer, monitor, logger)
	return NewService(store, b, tracer, monitor, logger)
}

func TestService_IngestAndPoll(t *testing.T) {
	s := newTestService(&stubBackend{})
	ctx := context.Background()

	payload := json.RawMessage(`{"org_id":"org-1","call_uuid":"c1","result":"completed"}`)
	event, err := s.Ingest(ctx, payload)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if event.CallID != "c1" {
		t.Errorf("expected call ID c1, got %q", event.CallID)
	}
	if event.ID == "" {
		t.Error("expected event to be assigned an ID")
	}
	if event.ReceivedAt.IsZero() {
		t.Error("expected event to carry an arrival timestamp")
	}

	events := s.Poll(ctx, "org-1")
	if len(events) != 1 {
		t.Fatalf("expected 1 event for org-1, got %d", len(events))
	}
	if string(events[0].Payload) != string(payload) {
		t.Errorf("expected payload to pass through opaque, got %s", events[0].Payload)
	}

	if again := s.Poll(ctx, "org-1"); len(again) != 0 {
		t.Errorf("expected drained mailbox to be empty, got %d events", len(again))
	}
}

func TestService_IngestWithoutOrgLandsInSentinelBucket(t *testing.T) {
	s := newTestService(&stubBackend{})
	ctx := context.Background()

	for _, payload := range []string{
		`{"call_uuid":"c9","result":"failed"}`,
		`not even json`,
	} {
		if _, err := s.Ingest(ctx, json.RawMessage(payload)); err != nil {
			t.Fatalf("expected no error for %q, got %v", payload, err)
		}
	}

	events := s.DrainUnattributed(ctx)
	if len(events) != 2 {
		t.Fatalf("expected 2 unattributed events, got %d", len(events))
	}
	if events[0].CallID != "c9" {
		t.Errorf("expected call ID c9, got %q", events[0].CallID)
	}
}

func TestService_Hangup(t *testing.T) {
	tests := []struct {
		name    string
		outcome backend.Outcome
	}{
		{name: "Acknowledged", outcome: backend.OutcomeAcknowledged},
		{name: "Rejected", outcome: backend.OutcomeRejected},
		{name: "Unreachable", outcome: backend.OutcomeUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &stubBackend{outcome: tt.outcome}
			s := newTestService(b)

			outcome := s.Hangup(context.Background(), "call-42")

			if outcome != tt.outcome {
				t.Errorf("expected outcome %s, got %s", tt.outcome, outcome)
			}
			if len(b.calls) != 1 || b.calls[0] != "call-42" {
				t.Errorf("expected exactly one backend attempt for call-42, got %v", b.calls)
			}
		})
	}
}
