// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package relay

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
)

func newTestStore(maxEvents int) *Store {
	return NewStore(maxEvents, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func event(callID string) *types.RelayEvent {
	return &types.RelayEvent{ID: callID, CallID: callID}
}

func TestStore_DrainBeforeAnyEvent(t *testing.T) {
	s := newTestStore(0)

	events := s.DrainAll(context.Background(), "org1")
	if len(events) != 0 {
		t.Errorf("expected empty sequence, got %d events", len(events))
	}
}

func TestStore_DrainCompletenessAndExclusivity(t *testing.T) {
	s := newTestStore(0)
	ctx := context.Background()

	s.Enqueue(ctx, "org1", event("c1"))
	s.Enqueue(ctx, "org1", event("c2"))
	s.Enqueue(ctx, "org1", event("c3"))

	events := s.DrainAll(ctx, "org1")
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, want := range []string{"c1", "c2", "c3"} {
		if events[i].CallID != want {
			t.Errorf("event %d: expected call %s, got %s", i, want, events[i].CallID)
		}
	}

	if again := s.DrainAll(ctx, "org1"); len(again) != 0 {
		t.Errorf("second drain should be empty, got %d events", len(again))
	}
}

func TestStore_TenantIsolation(t *testing.T) {
	s := newTestStore(0)
	ctx := context.Background()

	s.Enqueue(ctx, "org1", event("a"))
	s.Enqueue(ctx, "org2", event("b"))
	s.Enqueue(ctx, "org1", event("c"))

	org2 := s.DrainAll(ctx, "org2")
	if len(org2) != 1 || org2[0].CallID != "b" {
		t.Fatalf("expected org2 to see only its own event, got %v", org2)
	}

	org1 := s.DrainAll(ctx, "org1")
	if len(org1) != 2 {
		t.Fatalf("expected 2 events for org1, got %d", len(org1))
	}
	for _, e := range org1 {
		if e.CallID == "b" {
			t.Error("org1 drained an event enqueued under org2")
		}
	}
}

func TestStore_DuplicatesPreserved(t *testing.T) {
	s := newTestStore(0)
	ctx := context.Background()

	// Duplicate webhook deliveries must not be collapsed; idempotence is
	// explicitly not provided by this layer.
	s.Enqueue(ctx, "org1", event("c1"))
	s.Enqueue(ctx, "org1", event("c1"))

	events := s.DrainAll(ctx, "org1")
	if len(events) != 2 {
		t.Fatalf("expected duplicates to be preserved, got %d events", len(events))
	}
}

func TestStore_UnattributedEventsLandInSentinelBucket(t *testing.T) {
	s := newTestStore(0)
	ctx := context.Background()

	s.Enqueue(ctx, "", event("orphan"))

	if events := s.DrainAll(ctx, "org1"); len(events) != 0 {
		t.Errorf("unattributed event leaked into a tenant mailbox")
	}

	events := s.DrainAll(ctx, SentinelOrgID)
	if len(events) != 1 || events[0].CallID != "orphan" {
		t.Fatalf("expected orphan event in sentinel bucket, got %v", events)
	}
}

func TestStore_EvictionDropsOldest(t *testing.T) {
	s := newTestStore(3)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		s.Enqueue(ctx, "org1", event(fmt.Sprintf("c%d", i)))
	}

	events := s.DrainAll(ctx, "org1")
	if len(events) != 3 {
		t.Fatalf("expected mailbox bounded at 3 events, got %d", len(events))
	}
	for i, want := range []string{"c3", "c4", "c5"} {
		if events[i].CallID != want {
			t.Errorf("event %d: expected call %s, got %s", i, want, events[i].CallID)
		}
	}
}

func TestStore_NoLossAcrossConcurrentEnqueueAndDrain(t *testing.T) {
	s := newTestStore(0)
	ctx := context.Background()

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	drained := make(chan []*types.RelayEvent, 1024)
	done := make(chan struct{})

	// Drainer races with the producers.
	go func() {
		for {
			select {
			case <-done:
				drained <- s.DrainAll(ctx, "org1")
				close(drained)
				return
			default:
				drained <- s.DrainAll(ctx, "org1")
			}
		}
	}()

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.Enqueue(ctx, "org1", event(fmt.Sprintf("p%d-c%d", p, i)))
			}
		}(p)
	}

	wg.Wait()
	close(done)

	seen := make(map[string]int)
	for batch := range drained {
		for _, e := range batch {
			seen[e.CallID]++
		}
	}

	if len(seen) != producers*perProducer {
		t.Fatalf("expected %d distinct events, got %d", producers*perProducer, len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("event %s observed %d times, want exactly once", id, n)
		}
	}
}

func TestStore_PerTenantOrderUnderConcurrentEnqueues(t *testing.T) {
	s := newTestStore(0)
	ctx := context.Background()

	var wg sync.WaitGroup
	const perProducer = 50
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.Enqueue(ctx, "org1", event(fmt.Sprintf("p%d-c%d", p, i)))
			}
		}(p)
	}
	wg.Wait()

	// A single observer sees some total order: each producer's events in
	// its own submission order.
	events := s.DrainAll(ctx, "org1")
	next := make(map[string]int)
	for _, e := range events {
		var p, i int
		if _, err := fmt.Sscanf(e.CallID, "p%d-c%d", &p, &i); err != nil {
			t.Fatalf("unexpected call id %q", e.CallID)
		}
		key := fmt.Sprintf("p%d", p)
		if i != next[key] {
			t.Fatalf("producer %d events reordered: got c%d, want c%d", p, i, next[key])
		}
		next[key]++
	}
}
