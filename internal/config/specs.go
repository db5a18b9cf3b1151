// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	// CallBackendURL is the base URL of the external call automation backend
	// that receives hangup commands.
	CallBackendURL string        `envconfig:"call_backend_url" required:"true" validate:"url"`
	HangupTimeout  time.Duration `envconfig:"hangup_timeout" default:"8s"`

	// MailboxMaxEvents bounds per organization mailbox growth; the oldest
	// event is evicted once the bound is reached.
	MailboxMaxEvents int `envconfig:"mailbox_max_events" default:"1000" validate:"gt=0"`

	AuthenticationEnabled bool   `envconfig:"authentication_enabled" default:"true"`
	OIDCIssuer            string `envconfig:"oidc_issuer"`
	JWKSURL               string `envconfig:"jwks_url"`

	SessionCookieName string `envconfig:"session_cookie_name" default:"session"`
	LoginRoute        string `envconfig:"login_route" default:"/login"`

	InviteLifetime time.Duration `envconfig:"invite_lifetime" default:"168h"`
}
