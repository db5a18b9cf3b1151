// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/voicedesk/call-console/internal/db"
	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

// WithTx runs fn inside a database transaction. Statements issued through
// the context passed to fn share the transaction and commit or roll back
// together.
func (s *Storage) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return s.db.WithTx(ctx, fn)
}

func (s *Storage) GetSubjectByID(ctx context.Context, id string) (*types.Subject, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSubjectByID")
	defer span.End()

	var subject types.Subject
	err := s.db.Statement(ctx).
		Select("id", "email", "name", "role", "org_id", "status", "created_at").
		From("subjects").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&subject.ID, &subject.Email, &subject.Name, &subject.Role, &subject.OrgID, &subject.Status, &subject.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return &subject, nil
}

func (s *Storage) CreateSubject(ctx context.Context, subject *types.Subject) (*types.Subject, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateSubject")
	defer span.End()

	var created types.Subject
	err := s.db.Statement(ctx).
		Insert("subjects").
		Columns("id", "email", "name", "role", "org_id", "status").
		Values(subject.ID, subject.Email, subject.Name, subject.Role, subject.OrgID, subject.Status).
		Suffix("RETURNING id, email, name, role, org_id, status, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Email, &created.Name, &created.Role, &created.OrgID, &created.Status, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert subject: %w", err)
	}

	return &created, nil
}

func (s *Storage) UpdateSubjectName(ctx context.Context, id, name string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateSubjectName")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("subjects").
		Set("name", name).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update subject: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) SetSubjectStatus(ctx context.Context, id, status string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetSubjectStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("subjects").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to set subject status: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetInviteByToken(ctx context.Context, token string) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetInviteByToken")
	defer span.End()

	var invite types.Invite
	err := s.db.Statement(ctx).
		Select("id", "token", "org_id", "org_name", "email", "role", "status", "expires_at", "created_at").
		From("invites").
		Where(sq.Eq{"token": token}).
		QueryRowContext(ctx).
		Scan(&invite.ID, &invite.Token, &invite.OrgID, &invite.OrgName, &invite.Email, &invite.Role, &invite.Status, &invite.ExpiresAt, &invite.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invite: %w", err)
	}

	return &invite, nil
}

func (s *Storage) CreateInvite(ctx context.Context, invite *types.Invite) (*types.Invite, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateInvite")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite ID: %w", err)
	}

	var created types.Invite
	err = s.db.Statement(ctx).
		Insert("invites").
		Columns("id", "token", "org_id", "org_name", "email", "role", "status", "expires_at").
		Values(id.String(), invite.Token, invite.OrgID, invite.OrgName, invite.Email, invite.Role, invite.Status, invite.ExpiresAt).
		Suffix("RETURNING id, token, org_id, org_name, email, role, status, expires_at, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.Token, &created.OrgID, &created.OrgName, &created.Email, &created.Role, &created.Status, &created.ExpiresAt, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert invite: %w", err)
	}

	return &created, nil
}

func (s *Storage) UpdateInviteStatus(ctx context.Context, id, status string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateInviteStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("invites").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update invite: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) GetBotConfig(ctx context.Context, orgID string) (*types.BotConfig, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetBotConfig")
	defer span.End()

	var cfg types.BotConfig
	err := s.db.Statement(ctx).
		Select("org_id", "prompt", "voice", "language", "updated_at").
		From("bot_configs").
		Where(sq.Eq{"org_id": orgID}).
		QueryRowContext(ctx).
		Scan(&cfg.OrgID, &cfg.Prompt, &cfg.Voice, &cfg.Language, &cfg.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get bot config: %w", err)
	}

	return &cfg, nil
}

func (s *Storage) UpsertBotConfig(ctx context.Context, cfg *types.BotConfig) (*types.BotConfig, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertBotConfig")
	defer span.End()

	var updated types.BotConfig
	err := s.db.Statement(ctx).
		Insert("bot_configs").
		Columns("org_id", "prompt", "voice", "language", "updated_at").
		Values(cfg.OrgID, cfg.Prompt, cfg.Voice, cfg.Language, sq.Expr("now()")).
		Suffix("ON CONFLICT (org_id) DO UPDATE SET prompt = EXCLUDED.prompt, voice = EXCLUDED.voice, language = EXCLUDED.language, updated_at = now() RETURNING org_id, prompt, voice, language, updated_at").
		QueryRowContext(ctx).
		Scan(&updated.OrgID, &updated.Prompt, &updated.Voice, &updated.Language, &updated.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert bot config: %w", err)
	}

	return &updated, nil
}
