// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/voicedesk/call-console/internal/types"
)

type ProviderInterface interface {
	// Verifier returns the token verifier associated with the specified OIDC issuer
	Verifier(*oidc.Config) *oidc.IDTokenVerifier
}

type TokenVerifierInterface interface {
	// VerifyToken verifies a raw JWT string
	// Returns the subject (user ID) if the token is valid, otherwise an error
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}

type ResolverInterface interface {
	// Resolve verifies a raw bearer token and looks up the caller's profile.
	// A valid token with no matching profile yields a Resolution with a nil
	// Subject, it is not an error.
	Resolve(ctx context.Context, rawToken string) (*Resolution, error)
}

type SubjectStoreInterface interface {
	GetSubjectByID(ctx context.Context, id string) (*types.Subject, error)
}
