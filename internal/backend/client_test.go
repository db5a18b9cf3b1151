// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
)

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(url, timeout, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

func TestClient_Hangup(t *testing.T) {
	testCases := []struct {
		name            string
		handler         http.HandlerFunc
		expectedOutcome Outcome
	}{
		{
			name: "backend acknowledges",
			handler: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/calls/hangup" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(http.StatusOK)
			},
			expectedOutcome: OutcomeAcknowledged,
		},
		{
			name: "backend returns server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedOutcome: OutcomeRejected,
		},
		{
			name: "backend times out",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
			},
			expectedOutcome: OutcomeUnreachable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := newTestClient(srv.URL, 50*time.Millisecond)

			outcome := c.Hangup(context.Background(), "call-123")
			if outcome != tc.expectedOutcome {
				t.Errorf("expected outcome %s, got %s", tc.expectedOutcome, outcome)
			}
		})
	}
}

func TestClient_HangupSingleAttempt(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, time.Second)
	c.Hangup(context.Background(), "call-123")

	if attempts != 1 {
		t.Errorf("expected exactly one backend attempt, got %d", attempts)
	}
}
