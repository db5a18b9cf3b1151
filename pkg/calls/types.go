// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package calls

import "github.com/voicedesk/call-console/internal/types"

// deliveryEnvelope is the subset of an inbound delivery the relay cares
// about. The rest of the payload is passed through opaque.
type deliveryEnvelope struct {
	OrgID    string `json:"org_id"`
	CallUUID string `json:"call_uuid"`
}

type HangupRequest struct {
	CallUUID string `json:"call_uuid"`
}

type HangupResponse struct {
	Success bool `json:"success"`
}

type CallUpdatesResponse struct {
	Events []*types.RelayEvent `json:"events"`
}
