// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"fmt"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/storage"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
)

// Resolution is the outcome of resolving a bearer token to a caller.
// Subject is nil when the token is valid but no profile exists for it yet,
// e.g. a freshly registered user who has not accepted an invite.
type Resolution struct {
	UserID  string
	Subject *types.Subject
}

var _ ResolverInterface = (*Resolver)(nil)

type Resolver struct {
	verifier TokenVerifierInterface
	store    SubjectStoreInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *Resolver) Resolve(ctx context.Context, rawToken string) (*Resolution, error) {
	ctx, span := r.tracer.Start(ctx, "authentication.Resolver.Resolve")
	defer span.End()

	userID, err := r.verifier.VerifyToken(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	subject, err := r.store.GetSubjectByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Authenticated but unknown. Downstream decides what such a
			// caller may do.
			return &Resolution{UserID: userID}, nil
		}
		return nil, fmt.Errorf("failed to resolve subject %s: %w", userID, err)
	}

	return &Resolution{UserID: userID, Subject: subject}, nil
}

func NewResolver(verifier TokenVerifierInterface, store SubjectStoreInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Resolver {
	r := new(Resolver)

	r.verifier = verifier
	r.store = store

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
