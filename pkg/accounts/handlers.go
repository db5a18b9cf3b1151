// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

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
	mux.Get("/api/invite/{token}", a.getInvite)
	mux.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/api/auth/me", a.me)
		r.Patch("/api/auth/me", a.updateProfile)
		r.Post("/api/invites", a.createInvite)
		r.Post("/api/invite/{token}/accept", a.acceptInvite)
		r.Patch("/api/subjects/{id}/status", a.setSubjectStatus)
	})
}

// me returns the caller's resolved identity. A valid token without a profile
// yields a null profile, not an error, so the UI can route the caller to
// onboarding.
func (a *API) me(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "accounts.API.me")
	defer span.End()

	res, ok := authentication.ResolutionFromContext(r.Context())
	if !ok {
		a.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	a.writeJSON(w, http.StatusOK, MeResponse{UserID: res.UserID, Profile: res.Subject})
}

func (a *API) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.updateProfile")
	defer span.End()

	res, ok := authentication.ResolutionFromContext(r.Context())
	if !ok {
		a.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		a.errorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	subject, err := a.service.UpdateProfile(ctx, res.Subject, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProfile), errors.Is(err, ErrInactiveAccount):
			a.errorResponse(w, http.StatusForbidden, err.Error())
		default:
			a.logger.Errorf("failed to update profile: %v", err)
			a.errorResponse(w, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	a.writeJSON(w, http.StatusOK, MeResponse{UserID: res.UserID, Profile: subject})
}

func (a *API) getInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.getInvite")
	defer span.End()

	token := chi.URLParam(r, "token")

	invite, err := a.service.GetInvite(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeJSON(w, http.StatusNotFound, nil)
			return
		}
		a.logger.Errorf("failed to look up invite: %v", err)
		a.errorResponse(w, http.StatusInternalServerError, "failed to look up invite")
		return
	}

	a.writeJSON(w, http.StatusOK, InviteResponse{Invite: invite})
}

func (a *API) acceptInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.acceptInvite")
	defer span.End()

	res, ok := authentication.ResolutionFromContext(r.Context())
	if !ok {
		a.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	token := chi.URLParam(r, "token")

	subject, err := a.service.AcceptInvite(ctx, token, res.UserID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			a.writeJSON(w, http.StatusNotFound, nil)
		case errors.Is(err, ErrInviteExpired):
			a.errorResponse(w, http.StatusGone, "invite is expired")
		case errors.Is(err, ErrInviteNotPending):
			a.errorResponse(w, http.StatusConflict, "invite was already used")
		case errors.Is(err, storage.ErrDuplicateKey):
			a.errorResponse(w, http.StatusConflict, "profile already exists")
		default:
			a.logger.Errorf("failed to accept invite: %v", err)
			a.errorResponse(w, http.StatusInternalServerError, "failed to accept invite")
		}
		return
	}

	a.writeJSON(w, http.StatusOK, MeResponse{UserID: res.UserID, Profile: subject})
}

func (a *API) setSubjectStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.setSubjectStatus")
	defer span.End()

	res, ok := authentication.ResolutionFromContext(r.Context())
	if !ok {
		a.errorResponse(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	result := a.authz.Authorize(ctx, res.Subject, types.RoleSuperAdmin)
	if result.Decision != authorization.DecisionAllow {
		a.errorResponse(w, http.StatusForbidden, "forbidden")
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subject, err := a.service.SetSubjectStatus(ctx, chi.URLParam(r, "id"), &req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.writeJSON(w, http.StatusNotFound, nil)
			return
		}
		a.logger.Debugf("status change rejected: %v", err)
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	a.writeJSON(w, http.StatusOK, SubjectResponse{Subject: subject})
}

func (a *API) createInvite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "accounts.API.createInvite")
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

	var req CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	invite, err := a.service.CreateInvite(ctx, res.Subject, &req)
	if err != nil {
		a.logger.Debugf("invite creation rejected: %v", err)
		a.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	a.writeJSON(w, http.StatusCreated, InviteResponse{Invite: invite})
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
