// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gate

import (
	"net/http"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
)

type Middleware struct {
	gate       GateInterface
	cookieName string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) Guard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := m.tracer.Start(r.Context(), "gate.Middleware.Guard")
			defer span.End()

			hasCredential := false
			if _, err := r.Cookie(m.cookieName); err == nil {
				hasCredential = true
			}

			verdict := m.gate.Decide(r.URL.Path, hasCredential)
			if verdict.Decision == DecisionRedirect {
				m.logger.Debugf("no session credential for %s, redirecting to %s", r.URL.Path, verdict.Target)
				http.Redirect(w, r, verdict.Target, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func NewMiddleware(gate GateInterface, cookieName string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		gate:       gate,
		cookieName: cookieName,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}
