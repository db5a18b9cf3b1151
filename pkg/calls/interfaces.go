// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package calls

import (
	"context"
	"encoding/json"

	"github.com/voicedesk/call-console/internal/backend"
	"github.com/voicedesk/call-console/internal/types"
)

type ServiceInterface interface {
	// Ingest stores an inbound call-lifecycle delivery for later polling.
	// Deliveries that carry no org attribution are kept, not dropped.
	Ingest(ctx context.Context, payload json.RawMessage) (*types.RelayEvent, error)
	// Poll drains and returns the org's pending events in arrival order.
	Poll(ctx context.Context, orgID string) []*types.RelayEvent
	// DrainUnattributed drains the sentinel bucket of events that could
	// not be attributed to any org.
	DrainUnattributed(ctx context.Context) []*types.RelayEvent
	// Hangup issues a single best-effort termination command.
	Hangup(ctx context.Context, callID string) backend.Outcome
}
