// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package botconfig

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  storage,
		validate: validator.New(),
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *Service) GetConfig(ctx context.Context, orgID string) (*types.BotConfig, error) {
	ctx, span := s.tracer.Start(ctx, "botconfig.Service.GetConfig")
	defer span.End()

	return s.storage.GetBotConfig(ctx, orgID)
}

func (s *Service) UpdateConfig(ctx context.Context, subject *types.Subject, req *UpdateConfigRequest) (*types.BotConfig, error) {
	ctx, span := s.tracer.Start(ctx, "botconfig.Service.UpdateConfig")
	defer span.End()

	// Org admins always write their own org's config, whatever the body
	// says. Top-level admins may target any org.
	orgID := req.OrgID
	if subject.Role != types.RoleSuperAdmin {
		orgID = subject.OrgID
	}
	if orgID == "" {
		return nil, fmt.Errorf("org_id is required")
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid bot config: %w", err)
	}

	cfg := &types.BotConfig{
		OrgID:    orgID,
		Prompt:   req.Prompt,
		Voice:    req.Voice,
		Language: req.Language,
	}

	updated, err := s.storage.UpsertBotConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to store bot config: %w", err)
	}

	s.logger.Infof("bot config updated for org %s by %s", orgID, subject.ID)
	return updated, nil
}
