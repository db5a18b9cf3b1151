// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a production zap logger at the given level.
// An unparsable level falls back to error to keep startup going.
func NewLogger(level string) *Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	return &Logger{
		SugaredLogger: l.Sugar(),
		security:      NewSecurityLogger(l),
	}
}

// SecurityLogger emits structured security events on the parent logger,
// tagged so they can be routed to an audit sink.
type SecurityLogger struct {
	l *zap.Logger
}

func NewSecurityLogger(l *zap.Logger) *SecurityLogger {
	return &SecurityLogger{l: l}
}

func (s *SecurityLogger) AuthnFailure(reason string) {
	s.l.Warn("authentication failure",
		zap.String("log_type", "security"),
		zap.String("event", "authn_failure"),
		zap.String("reason", reason),
	)
}

func (s *SecurityLogger) AuthzFailure(subject, action string) {
	s.l.Warn("authorization failure",
		zap.String("log_type", "security"),
		zap.String("event", "authz_failure"),
		zap.String("subject", subject),
		zap.String("action", action),
	)
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup",
		zap.String("log_type", "security"),
		zap.String("event", "system_startup"),
	)
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown",
		zap.String("log_type", "security"),
		zap.String("event", "system_shutdown"),
	)
}
