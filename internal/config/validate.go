// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"github.com/go-playground/validator/v10"
)

// Validate checks cross-field constraints that envconfig tags cannot express.
func (s *EnvSpec) Validate() error {
	return validator.New().Struct(s)
}
