// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"time"
)

// Roles form a small closed set. The role determines the maximal capability
// set a subject may be authorized for, never the reverse.
const (
	RoleSuperAdmin = "super_admin"
	RoleOrgAdmin   = "org_admin"
	RoleClientUser = "client_user"
)

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
	StatusPending  = "pending"
)

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusExpired  = "expired"
)

// Subject is a verified caller identity. Subjects are never deleted, only
// disabled.
type Subject struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	Role      string    `db:"role" json:"role"`
	OrgID     string    `db:"org_id" json:"org_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Invite struct {
	ID        string    `db:"id" json:"id"`
	Token     string    `db:"token" json:"token"`
	OrgID     string    `db:"org_id" json:"org_id"`
	OrgName   string    `db:"org_name" json:"org_name"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	Status    string    `db:"status" json:"status"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type BotConfig struct {
	OrgID     string    `db:"org_id" json:"org_id"`
	Prompt    string    `db:"prompt" json:"prompt"`
	Voice     string    `db:"voice" json:"voice"`
	Language  string    `db:"language" json:"language"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RelayEvent is a unit of org scoped mailbox content. Events are immutable
// once created; the relay store owns them from ingestion to drain.
type RelayEvent struct {
	ID         string          `json:"id"`
	CallID     string          `json:"call_uuid"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt time.Time       `json:"received_at"`
}
