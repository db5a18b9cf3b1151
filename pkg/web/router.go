// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/voicedesk/call-console/internal/authorization"
	"github.com/voicedesk/call-console/internal/backend"
	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/relay"
	"github.com/voicedesk/call-console/internal/storage"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/pkg/accounts"
	"github.com/voicedesk/call-console/pkg/authentication"
	"github.com/voicedesk/call-console/pkg/botconfig"
	"github.com/voicedesk/call-console/pkg/calls"
	"github.com/voicedesk/call-console/pkg/gate"
	"github.com/voicedesk/call-console/pkg/metrics"
	"github.com/voicedesk/call-console/pkg/status"
)

type RouterConfig struct {
	PublicPaths    []string
	LoginRoute     string
	CookieName     string
	InviteLifetime time.Duration
}

func NewRouter(
	cfg *RouterConfig,
	store storage.StorageInterface,
	relayStore relay.StoreInterface,
	backendClient backend.ClientInterface,
	verifier authentication.TokenVerifierInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	perimeter := gate.NewGate(cfg.PublicPaths, cfg.LoginRoute)

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
		gate.NewMiddleware(perimeter, cfg.CookieName, tracer, monitor, logger).Guard(),
	)

	router.Use(middlewares...)

	resolver := authentication.NewResolver(verifier, store, tracer, monitor, logger)
	authenticate := authentication.NewMiddleware(resolver, tracer, monitor, logger).Authenticate()
	authz := authorization.NewAuthorizer(tracer, monitor, logger)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	callsService := calls.NewService(relayStore, backendClient, tracer, monitor, logger)
	calls.NewAPI(callsService, authz, tracer, monitor, logger).RegisterEndpoints(router, authenticate)

	accountsService := accounts.NewService(store, cfg.InviteLifetime, tracer, monitor, logger)
	accounts.NewAPI(accountsService, authz, tracer, monitor, logger).RegisterEndpoints(router, authenticate)

	botconfigService := botconfig.NewService(store, tracer, monitor, logger)
	botconfig.NewAPI(botconfigService, authz, tracer, monitor, logger).RegisterEndpoints(router, authenticate)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
