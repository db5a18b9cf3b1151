// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/voicedesk/call-console/internal/types"
)

type AuthorizerInterface interface {
	Authorize(ctx context.Context, subject *types.Subject, requiredRoles ...string) Result
}
