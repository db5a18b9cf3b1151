// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "context"

// Define a private custom type to avoid collisions
type contextKey struct{}

var resolutionContextKey = contextKey{}

// WithResolution returns a new context carrying the given resolution.
func WithResolution(ctx context.Context, res *Resolution) context.Context {
	return context.WithValue(ctx, resolutionContextKey, res)
}

// ResolutionFromContext retrieves the resolution from the context.
// Returns nil and false if no resolution is present.
func ResolutionFromContext(ctx context.Context) (*Resolution, bool) {
	res, ok := ctx.Value(resolutionContextKey).(*Resolution)
	return res, ok
}
