// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package calls

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voicedesk/call-console/internal/backend"
	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/relay"
	"github.com/voicedesk/call-console/internal/tracing"
	"github.com/voicedesk/call-console/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	relay   relay.StoreInterface
	backend backend.ClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	relayStore relay.StoreInterface,
	backendClient backend.ClientInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		relay:   relayStore,
		backend: backendClient,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (s *Service) Ingest(ctx context.Context, payload json.RawMessage) (*types.RelayEvent, error) {
	ctx, span := s.tracer.Start(ctx, "calls.Service.Ingest")
	defer span.End()

	// A delivery that does not decode still gets relayed, only without org
	// attribution. Silent loss is worse than misfiling.
	var envelope deliveryEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		s.logger.Warnf("undecodable delivery payload: %v", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate event ID: %w", err)
	}

	event := &types.RelayEvent{
		ID:         id.String(),
		CallID:     envelope.CallUUID,
		Payload:    payload,
		ReceivedAt: time.Now().UTC(),
	}

	s.relay.Enqueue(ctx, envelope.OrgID, event)

	s.logger.Debugf("relayed event %s for call %q org %q", event.ID, event.CallID, envelope.OrgID)
	return event, nil
}

func (s *Service) Poll(ctx context.Context, orgID string) []*types.RelayEvent {
	ctx, span := s.tracer.Start(ctx, "calls.Service.Poll")
	defer span.End()

	return s.relay.DrainAll(ctx, orgID)
}

func (s *Service) DrainUnattributed(ctx context.Context) []*types.RelayEvent {
	ctx, span := s.tracer.Start(ctx, "calls.Service.DrainUnattributed")
	defer span.End()

	return s.relay.DrainAll(ctx, relay.SentinelOrgID)
}

func (s *Service) Hangup(ctx context.Context, callID string) backend.Outcome {
	ctx, span := s.tracer.Start(ctx, "calls.Service.Hangup")
	defer span.End()

	outcome := s.backend.Hangup(ctx, callID)
	if outcome != backend.OutcomeAcknowledged {
		s.logger.Warnf("hangup for call %s not acknowledged: %s", callID, outcome)
	}

	return outcome
}
