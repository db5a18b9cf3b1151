// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package botconfig

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voicedesk/call-console/internal/authorization"
	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/storage"
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
	// The call backend fetches the config before dialing, it carries no
	// session.
	mux.Get("/api/bot-config", a.getConfig)
	mux.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Put("/api/bot-config", a.updateConfig)
	})
}

func (a *API) getConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "botconfig.API.getConfig")
	defer span.End()

	orgID := r.URL.Query().Get("org_id")
	if orgID == "" {
		a.errorResponse(w, http.StatusBadRequest, "org_id is required")
		return
	}

	cfg, err := a.service.GetConfig(ctx, orgID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeJSON(w, http.StatusNotFound, nil)
			return
		}
		a.logger.Errorf("failed to get bot config: %v", err)
		a.errorResponse(w, http.StatusInternalServerError, "failed to get bot config")
		return
	}

	a.writeJSON(w, http.StatusOK, ConfigResponse{Config: cfg})
}

func (a *API) updateConfig(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "botconfig.API.updateConfig")
	defer span.End()

	res, ok := authentication.ResolutionFromContext(r.Context())
	if !ok {
		a.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	result := a.authz.Authorize(ctx, res.Subject, types.RoleSuperAdmin, types.RoleOrgAdmin)
	if result.Decision != authorization.DecisionAllow {
		a.errorResponse(w, http.StatusForbidden, "forbidden")
		return
	}

	var req UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := a.service.UpdateConfig(ctx, res.Subject, &req)
	if err != nil {
		a.logger.Debugf("bot config update rejected: %v", err)
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	a.writeJSON(w, http.StatusOK, ConfigResponse{Config: cfg})
}

func (a *API) errorResponse(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]interface{}{
		"status":  status,
		"message": message,
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Errorf("failed to encode response: %v", err)
	}
}
