// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package calls

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/voicedesk/call-console/internal/authorization"
	"github.com/voicedesk/call-console/internal/backend"
	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/relay"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
	"github.com/voicedesk/call-console/pkg/authentication"
)

type testEnv struct {
	mux     *chi.Mux
	backend *stubBackend
	subject *types.Subject
}

// stubAuthenticate injects whatever subject the test currently holds,
// standing in for the bearer token middleware.
func (e *testEnv) stubAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := &authentication.Resolution{UserID: "user-1", Subject: e.subject}
		ctx := authentication.WithResolution(r.Context(), res)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestEnv() *testEnv {
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("call-console")
	logger := logging.NewNoopLogger()

	env := &testEnv{backend: &stubBackend{outcome: backend.OutcomeAcknowledged}}

	store := relay.NewStore(0, tracer, monitor, logger)
	service := NewService(store, env.backend, tracer, monitor, logger)
	authz := authorization.NewAuthorizer(tracer, monitor, logger)
	api := NewAPI(service, authz, tracer, monitor, logger)

	env.mux = chi.NewMux()
	api.RegisterEndpoints(env.mux, env.stubAuthenticate)

	return env
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	e.mux.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) poll(t *testing.T) []*types.RelayEvent {
	t.Helper()
	rr := e.do(t, http.MethodGet, "/api/call-updates", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200 from poll, got %d", rr.Code)
	}
	var resp CallUpdatesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode poll response: %v", err)
	}
	return resp.Events
}

func TestAPI_IngestThenPollRoundTrip(t *testing.T) {
	env := newTestEnv()

	rr := env.do(t, http.MethodPost, "/api/call-ended", `{"org_id":"org-1","call_uuid":"c1","result":"completed"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected ingestion to be acknowledged, got %d", rr.Code)
	}

	env.subject = &types.Subject{ID: "user-1", Role: types.RoleClientUser, OrgID: "org-1", Status: types.StatusActive}
	events := env.poll(t)
	if len(events) != 1 || events[0].CallID != "c1" {
		t.Fatalf("expected one event for call c1, got %+v", events)
	}

	// Another org must never see org-1's events.
	env.subject = &types.Subject{ID: "user-2", Role: types.RoleClientUser, OrgID: "org-2", Status: types.StatusActive}
	if events := env.poll(t); len(events) != 0 {
		t.Fatalf("expected no events for org-2, got %d", len(events))
	}

	// Drain is destructive, a second poll by org-1 comes back empty.
	env.subject = &types.Subject{ID: "user-1", Role: types.RoleClientUser, OrgID: "org-1", Status: types.StatusActive}
	if events := env.poll(t); len(events) != 0 {
		t.Fatalf("expected org-1 mailbox to be drained, got %d events", len(events))
	}
}

func TestAPI_PollWithoutProfileReturnsEmpty(t *testing.T) {
	env := newTestEnv()
	env.subject = nil

	events := env.poll(t)
	if len(events) != 0 {
		t.Fatalf("expected empty events for caller without profile, got %d", len(events))
	}
}

func TestAPI_HangupCall(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		outcome        backend.Outcome
		expectedStatus int
		expectSuccess  bool
		expectAttempts int
	}{
		{
			name:           "Missing call_uuid is the caller's bug",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectAttempts: 0,
		},
		{
			name:           "Invalid body",
			body:           `{not json`,
			expectedStatus: http.StatusBadRequest,
			expectAttempts: 0,
		},
		{
			name:           "Backend acknowledges",
			body:           `{"call_uuid":"c1"}`,
			outcome:        backend.OutcomeAcknowledged,
			expectedStatus: http.StatusOK,
			expectSuccess:  true,
			expectAttempts: 1,
		},
		{
			name:           "Backend rejection is not surfaced",
			body:           `{"call_uuid":"c1"}`,
			outcome:        backend.OutcomeRejected,
			expectedStatus: http.StatusOK,
			expectSuccess:  true,
			expectAttempts: 1,
		},
		{
			name:           "Backend unreachable is not surfaced",
			body:           `{"call_uuid":"c1"}`,
			outcome:        backend.OutcomeUnreachable,
			expectedStatus: http.StatusOK,
			expectSuccess:  true,
			expectAttempts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			env.backend.outcome = tt.outcome
			env.subject = &types.Subject{ID: "user-1", Role: types.RoleClientUser, OrgID: "org-1", Status: types.StatusActive}

			rr := env.do(t, http.MethodPost, "/api/hangup-call", tt.body)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}
			if tt.expectSuccess {
				var resp HangupResponse
				if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if !resp.Success {
					t.Error("expected success response")
				}
			}
			if len(env.backend.calls) != tt.expectAttempts {
				t.Errorf("expected %d backend attempts, got %d", tt.expectAttempts, len(env.backend.calls))
			}
		})
	}
}

func TestAPI_AdminCallUpdates(t *testing.T) {
	env := newTestEnv()

	rr := env.do(t, http.MethodPost, "/api/call-ended", `{"call_uuid":"c7","result":"failed"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected ingestion to be acknowledged, got %d", rr.Code)
	}

	env.subject = &types.Subject{ID: "user-1", Role: types.RoleClientUser, OrgID: "org-1", Status: types.StatusActive}
	if rr := env.do(t, http.MethodGet, "/api/admin/call-updates", ""); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for client_user, got %d", rr.Code)
	}

	env.subject = &types.Subject{ID: "admin-1", Role: types.RoleSuperAdmin, OrgID: "org-0", Status: types.StatusActive}
	rr = env.do(t, http.MethodGet, "/api/admin/call-updates", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for super_admin, got %d", rr.Code)
	}

	var resp CallUpdatesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].CallID != "c7" {
		t.Fatalf("expected the unattributed event for call c7, got %+v", resp.Events)
	}
}
