// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/voicedesk/call-console/internal/types"
)

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error

	GetSubjectByID(ctx context.Context, id string) (*types.Subject, error)
	CreateSubject(ctx context.Context, s *types.Subject) (*types.Subject, error)
	UpdateSubjectName(ctx context.Context, id, name string) error
	SetSubjectStatus(ctx context.Context, id, status string) error

	GetInviteByToken(ctx context.Context, token string) (*types.Invite, error)
	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	UpdateInviteStatus(ctx context.Context, id, status string) error

	GetBotConfig(ctx context.Context, orgID string) (*types.BotConfig, error)
	UpsertBotConfig(ctx context.Context, cfg *types.BotConfig) (*types.BotConfig, error)
}
