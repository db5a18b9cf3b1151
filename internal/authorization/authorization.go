// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"slices"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
)

// DefaultFallbackRoute is where denied interactive callers are sent when the
// call site supplies no fallback of its own.
const DefaultFallbackRoute = "/dashboard"

type Decision int

const (
	// DecisionPending means the subject is still being resolved; callers
	// must render nothing and not navigate.
	DecisionPending Decision = iota
	DecisionAllow
	DecisionDeny
)

type Result struct {
	Decision Decision
	// Fallback is the route a denied interactive caller should be sent to.
	Fallback string
}

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	return &Authorizer{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// Authorize decides whether the subject's role is in the required set. A nil
// subject is a transitional state, not a denial. A subject that is not
// active is always denied regardless of role, so a disable takes effect on
// the very next request.
func (a *Authorizer) Authorize(ctx context.Context, subject *types.Subject, requiredRoles ...string) Result {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.Authorize")
	defer span.End()

	if subject == nil {
		return Result{Decision: DecisionPending}
	}

	if subject.Status != types.StatusActive {
		a.logger.Security().AuthzFailure(subject.ID, "inactive_account")
		return Result{Decision: DecisionDeny, Fallback: DefaultFallbackRoute}
	}

	if slices.Contains(requiredRoles, subject.Role) {
		return Result{Decision: DecisionAllow}
	}

	a.logger.Security().AuthzFailure(subject.ID, "insufficient_role")
	return Result{Decision: DecisionDeny, Fallback: DefaultFallbackRoute}
}
