// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package calls

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voicedesk/call-console/internal/authorization"
	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
	"github.com/voicedesk/call-console/pkg/authentication"
)

type API struct {
	service ServiceInterface
	authz   authorization.AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	authz authorization.AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service: service,
		authz:   authz,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux, authenticate func(http.Handler) http.Handler) {
	mux.Post("/api/call-ended", a.callEnded)
	mux.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/api/call-updates", a.callUpdates)
		r.Post("/api/hangup-call", a.hangupCall)
		r.Get("/api/admin/call-updates", a.adminCallUpdates)
	})
}

// callEnded accepts inbound deliveries from the call backend. The backend
// offers no redelivery, so this endpoint acknowledges everything it manages
// to read.
func (a *API) callEnded(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "calls.API.callEnded")
	defer span.End()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		a.badRequestResponse(w, "failed to read request body")
		return
	}

	if _, err := a.service.Ingest(ctx, payload); err != nil {
		a.logger.Errorf("failed to ingest delivery: %v", err)
		http.Error(w, "failed to store event", http.StatusInternalServerError)
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// callUpdates drains and returns the pending events for the caller's org.
// Draining is destructive, each event is delivered to exactly one poll.
func (a *API) callUpdates(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "calls.API.callUpdates")
	defer span.End()

	subject := a.resolvedSubject(r)
	if subject == nil {
		// Authenticated but no profile yet, there is no org to drain.
		a.writeJSON(w, http.StatusOK, CallUpdatesResponse{Events: []*types.RelayEvent{}})
		return
	}

	events := a.service.Poll(ctx, subject.OrgID)
	a.writeJSON(w, http.StatusOK, CallUpdatesResponse{Events: events})
}

func (a *API) hangupCall(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "calls.API.hangupCall")
	defer span.End()

	var req HangupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.badRequestResponse(w, "invalid request body")
		return
	}

	if req.CallUUID == "" {
		a.badRequestResponse(w, "call_uuid is required")
		return
	}

	// Best effort by contract: the outcome of the backend command never
	// fails this request.
	a.service.Hangup(ctx, req.CallUUID)

	a.writeJSON(w, http.StatusOK, HangupResponse{Success: true})
}

// adminCallUpdates drains the sentinel bucket of unattributable events so an
// administrator can inspect deliveries that arrived without org tags.
func (a *API) adminCallUpdates(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "calls.API.adminCallUpdates")
	defer span.End()

	subject := a.resolvedSubject(r)
	result := a.authz.Authorize(ctx, subject, types.RoleSuperAdmin)
	if result.Decision != authorization.DecisionAllow {
		a.forbiddenResponse(w, result.Fallback)
		return
	}

	events := a.service.DrainUnattributed(ctx)
	a.writeJSON(w, http.StatusOK, CallUpdatesResponse{Events: events})
}

func (a *API) resolvedSubject(r *http.Request) *types.Subject {
	res, ok := authentication.ResolutionFromContext(r.Context())
	if !ok {
		return nil
	}
	return res.Subject
}

func (a *API) badRequestResponse(w http.ResponseWriter, message string) {
	a.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"status":  http.StatusBadRequest,
		"message": message,
	})
}

func (a *API) forbiddenResponse(w http.ResponseWriter, fallback string) {
	a.writeJSON(w, http.StatusForbidden, map[string]interface{}{
		"status":   http.StatusForbidden,
		"message":  "forbidden",
		"fallback": fallback,
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
