// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/voicedesk/call-console/internal/storage"
	"github.com/voicedesk/call-console/internal/types"
)

func TestResolver_Resolve(t *testing.T) {
	activeSubject := &types.Subject{
		ID:     "user-123",
		Email:  "operator@example.com",
		Role:   types.RoleOrgAdmin,
		OrgID:  "org-1",
		Status: types.StatusActive,
	}

	tests := []struct {
		name            string
		token           string
		setupMocks      func(*MockTokenVerifierInterface, *MockSubjectStoreInterface)
		expectedUserID  string
		expectedSubject *types.Subject
		expectedErr     bool
	}{
		{
			name:  "Invalid token",
			token: "bad-token",
			setupMocks: func(verifier *MockTokenVerifierInterface, store *MockSubjectStoreInterface) {
				verifier.EXPECT().VerifyToken(gomock.Any(), "bad-token").Return("", fmt.Errorf("token expired"))
			},
			expectedErr: true,
		},
		{
			name:  "Valid token with profile",
			token: "good-token",
			setupMocks: func(verifier *MockTokenVerifierInterface, store *MockSubjectStoreInterface) {
				verifier.EXPECT().VerifyToken(gomock.Any(), "good-token").Return("user-123", nil)
				store.EXPECT().GetSubjectByID(gomock.Any(), "user-123").Return(activeSubject, nil)
			},
			expectedUserID:  "user-123",
			expectedSubject: activeSubject,
		},
		{
			name:  "Valid token without profile yields nil subject",
			token: "orphan-token",
			setupMocks: func(verifier *MockTokenVerifierInterface, store *MockSubjectStoreInterface) {
				verifier.EXPECT().VerifyToken(gomock.Any(), "orphan-token").Return("user-456", nil)
				store.EXPECT().GetSubjectByID(gomock.Any(), "user-456").Return(nil, storage.ErrNotFound)
			},
			expectedUserID:  "user-456",
			expectedSubject: nil,
		},
		{
			name:  "Store failure propagates",
			token: "good-token",
			setupMocks: func(verifier *MockTokenVerifierInterface, store *MockSubjectStoreInterface) {
				verifier.EXPECT().VerifyToken(gomock.Any(), "good-token").Return("user-123", nil)
				store.EXPECT().GetSubjectByID(gomock.Any(), "user-123").Return(nil, fmt.Errorf("connection refused"))
			},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockVerifier := NewMockTokenVerifierInterface(ctrl)
			mockStore := NewMockSubjectStoreInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Resolver.Resolve").Return(ctx, trace.SpanFromContext(ctx))

			tt.setupMocks(mockVerifier, mockStore)

			resolver := NewResolver(mockVerifier, mockStore, mockTracer, mockMonitor, mockLogger)

			res, err := resolver.Resolve(ctx, tt.token)

			if tt.expectedErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if res.UserID != tt.expectedUserID {
				t.Errorf("expected user ID %q, got %q", tt.expectedUserID, res.UserID)
			}
			if tt.expectedSubject == nil && res.Subject != nil {
				t.Errorf("expected nil subject, got %+v", res.Subject)
			}
			if tt.expectedSubject != nil {
				if res.Subject == nil {
					t.Fatal("expected subject, got nil")
				}
				if res.Subject.ID != tt.expectedSubject.ID {
					t.Errorf("expected subject ID %q, got %q", tt.expectedSubject.ID, res.Subject.ID)
				}
			}
		})
	}
}
