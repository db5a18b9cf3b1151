// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package botconfig

import "github.com/voicedesk/call-console/internal/types"

type UpdateConfigRequest struct {
	OrgID    string `json:"org_id"`
	Prompt   string `json:"prompt" validate:"required"`
	Voice    string `json:"voice" validate:"required"`
	Language string `json:"language" validate:"required,bcp47_language_tag"`
}

type ConfigResponse struct {
	Config *types.BotConfig `json:"config"`
}
