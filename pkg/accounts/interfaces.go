// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"

	"github.com/voicedesk/call-console/internal/types"
)

type ServiceInterface interface {
	UpdateProfile(ctx context.Context, subject *types.Subject, name string) (*types.Subject, error)
	SetSubjectStatus(ctx context.Context, id string, req *UpdateStatusRequest) (*types.Subject, error)
	GetInvite(ctx context.Context, token string) (*types.Invite, error)
	AcceptInvite(ctx context.Context, token, userID string) (*types.Subject, error)
	CreateInvite(ctx context.Context, subject *types.Subject, req *CreateInviteRequest) (*types.Invite, error)
}

type StorageInterface interface {
	WithTx(ctx context.Context, fn func(context.Context) error) error
	GetSubjectByID(ctx context.Context, id string) (*types.Subject, error)
	CreateSubject(ctx context.Context, subject *types.Subject) (*types.Subject, error)
	UpdateSubjectName(ctx context.Context, id, name string) error
	SetSubjectStatus(ctx context.Context, id, status string) error
	GetInviteByToken(ctx context.Context, token string) (*types.Invite, error)
	CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error)
	UpdateInviteStatus(ctx context.Context, id, status string) error
}
