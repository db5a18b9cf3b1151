// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package backend

import (
	"context"
)

// Outcome is the internal result of a backend command. It is observable via
// logs and metrics but is never surfaced to the caller as a failure.
type Outcome string

const (
	OutcomeAcknowledged Outcome = "acknowledged"
	OutcomeRejected     Outcome = "rejected"
	OutcomeUnreachable  Outcome = "unreachable"
)

type ClientInterface interface {
	// Hangup issues exactly one termination attempt for the call. It never
	// returns an error; retrying is the caller's responsibility.
	Hangup(ctx context.Context, callID string) Outcome
}
