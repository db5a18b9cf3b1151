// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package botconfig

import (
	"context"

	"github.com/voicedesk/call-console/internal/types"
)

type ServiceInterface interface {
	GetConfig(ctx context.Context, orgID string) (*types.BotConfig, error)
	UpdateConfig(ctx context.Context, subject *types.Subject, req *UpdateConfigRequest) (*types.BotConfig, error)
}

type StorageInterface interface {
	GetBotConfig(ctx context.Context, orgID string) (*types.BotConfig, error)
	UpsertBotConfig(ctx context.Context, cfg *types.BotConfig) (*types.BotConfig, error)
}
