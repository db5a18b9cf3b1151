// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
)

var (
	ErrInviteNotPending = fmt.Errorf("invite is not pending")
	ErrInviteExpired    = fmt.Errorf("invite is expired")
	ErrNoProfile        = fmt.Errorf("caller has no profile")
	ErrInactiveAccount  = fmt.Errorf("account is not active")
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage        StorageInterface
	inviteLifetime time.Duration
	validate       *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	inviteLifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:        storage,
		inviteLifetime: inviteLifetime,
		validate:       validator.New(),
		tracer:         tracer,
		monitor:        monitor,
		logger:         logger,
	}
}

func (s *Service) UpdateProfile(ctx context.Context, subject *types.Subject, name string) (*types.Subject, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.UpdateProfile")
	defer span.End()

	if subject == nil {
		return nil, ErrNoProfile
	}
	if subject.Status != types.StatusActive {
		return nil, ErrInactiveAccount
	}

	if err := s.storage.UpdateSubjectName(ctx, subject.ID, name); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.storage.GetSubjectByID(ctx, subject.ID)
}

// SetSubjectStatus flips a subject between active and disabled. Subjects are
// never deleted; disabling is the only removal path and the authorizer denies
// every request from a non-active subject.
func (s *Service) SetSubjectStatus(ctx context.Context, id string, req *UpdateStatusRequest) (*types.Subject, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.SetSubjectStatus")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid status request: %w", err)
	}

	if err := s.storage.SetSubjectStatus(ctx, id, req.Status); err != nil {
		return nil, err
	}

	s.logger.Infof("subject %s status set to %s", id, req.Status)
	return s.storage.GetSubjectByID(ctx, id)
}

// GetInvite returns the invite for a token. A pending invite past its expiry
// is marked expired on read, so the caller always sees the effective status.
func (s *Service) GetInvite(ctx context.Context, token string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.GetInvite")
	defer span.End()

	invite, err := s.storage.GetInviteByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if invite.Status == types.InviteStatusPending && time.Now().After(invite.ExpiresAt) {
		if err := s.storage.UpdateInviteStatus(ctx, invite.ID, types.InviteStatusExpired); err != nil {
			s.logger.Errorf("failed to expire invite %s: %v", invite.ID, err)
		}
		invite.Status = types.InviteStatusExpired
	}

	return invite, nil
}

func (s *Service) AcceptInvite(ctx context.Context, token, userID string) (*types.Subject, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.AcceptInvite")
	defer span.End()

	invite, err := s.GetInvite(ctx, token)
	if err != nil {
		return nil, err
	}

	switch invite.Status {
	case types.InviteStatusExpired:
		return nil, ErrInviteExpired
	case types.InviteStatusPending:
	default:
		return nil, ErrInviteNotPending
	}

	subject := &types.Subject{
		ID:     userID,
		Email:  invite.Email,
		Role:   invite.Role,
		OrgID:  invite.OrgID,
		Status: types.StatusActive,
	}

	// Provisioning the subject and consuming the invite commit together. A
	// partial acceptance would leave a profile behind with the invite still
	// pending, and every retry would then hit the subjects unique constraint.
	var created *types.Subject
	err = s.storage.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if created, err = s.storage.CreateSubject(ctx, subject); err != nil {
			return fmt.Errorf("failed to create subject from invite: %w", err)
		}

		if err := s.storage.UpdateInviteStatus(ctx, invite.ID, types.InviteStatusAccepted); err != nil {
			return fmt.Errorf("failed to mark invite accepted: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("invite %s accepted by user %s for org %s", invite.ID, userID, invite.OrgID)
	return created, nil
}

func (s *Service) CreateInvite(ctx context.Context, subject *types.Subject, req *CreateInviteRequest) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "accounts.Service.CreateInvite")
	defer span.End()

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid invite request: %w", err)
	}

	// Org admins may only invite into their own org. Top-level admins may
	// invite anywhere.
	if subject.Role == types.RoleOrgAdmin && req.OrgID != subject.OrgID {
		s.logger.Security().AuthzFailure(subject.ID, "invite_cross_org")
		return nil, fmt.Errorf("org admins may only invite into their own org")
	}

	invite := &types.Invite{
		Token:     uuid.NewString(),
		OrgID:     req.OrgID,
		OrgName:   req.OrgName,
		Email:     req.Email,
		Role:      req.Role,
		Status:    types.InviteStatusPending,
		ExpiresAt: time.Now().Add(s.inviteLifetime),
	}

	return s.storage.CreateInvite(ctx, invite)
}
