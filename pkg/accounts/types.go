// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package accounts

import "github.com/voicedesk/call-console/internal/types"

type MeResponse struct {
	UserID  string         `json:"user_id"`
	Profile *types.Subject `json:"profile"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active disabled"`
}

type SubjectResponse struct {
	Subject *types.Subject `json:"subject"`
}

type CreateInviteRequest struct {
	Email   string `json:"email" validate:"required,email"`
	OrgID   string `json:"org_id" validate:"required"`
	OrgName string `json:"org_name"`
	Role    string `json:"role" validate:"required,oneof=org_admin client_user"`
}

type InviteResponse struct {
	Invite *types.Invite `json:"invite"`
}
