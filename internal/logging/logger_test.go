// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestDebugLogger(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("DEBUG")
	}()
}

func TestInvalidLevel(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("invalid")
	}()
}

func TestSecurityLoggerDoesNotPanic(t *testing.T) {
	l := NewNoopLogger()

	l.Security().AuthnFailure("missing token")
	l.Security().AuthzFailure("user-123", "admin_drain")
	l.Security().SystemStartup()
	l.Security().SystemShutdown()
}
