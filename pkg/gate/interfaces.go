// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gate

type GateInterface interface {
	// Decide classifies a request path given whether a session credential
	// is present, without validating the credential itself.
	Decide(path string, hasCredential bool) Verdict
}
