// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package relay

import (
	"context"

	"github.com/voicedesk/call-console/internal/types"
)

type StoreInterface interface {
	// Enqueue appends an event to the tail of the org's mailbox, creating
	// the mailbox if absent. It never fails and never blocks on mailbox
	// size.
	Enqueue(ctx context.Context, orgID string, event *types.RelayEvent)
	// DrainAll atomically returns the current mailbox contents and empties
	// it. Draining an org with no mailbox returns an empty sequence.
	DrainAll(ctx context.Context, orgID string) []*types.RelayEvent
}
