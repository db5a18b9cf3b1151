// Copyright 2026 Voicedesk Ltd.
// SPDX-License-Identifier: AGPL-3.0

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/voicedesk/call-console/internal/logging"
	"github.com/voicedesk/call-console/internal/monitoring"
	"github.com/voicedesk/call-console/internal/tracing"
)

const defaultTimeout = 8 * time.Second

const dependencyName = "call_backend"

var _ ClientInterface = (*Client)(nil)

// Client talks to the external call automation backend. Commands are
// fire-and-forget: the hard timeout bounds the single attempt and every
// failure mode degrades to an observable outcome instead of an error.
type Client struct {
	baseURL string
	client  *http.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(baseURL string, timeout time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

type hangupCommand struct {
	CallUUID string `json:"call_uuid"`
}

func (c *Client) Hangup(ctx context.Context, callID string) Outcome {
	ctx, span := c.tracer.Start(ctx, "backend.Client.Hangup")
	defer span.End()

	body, err := json.Marshal(hangupCommand{CallUUID: callID})
	if err != nil {
		c.logger.Errorf("failed to marshal hangup command: %v", err)
		return OutcomeUnreachable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/calls/hangup", bytes.NewReader(body))
	if err != nil {
		c.logger.Errorf("failed to build hangup request: %v", err)
		return OutcomeUnreachable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warnf("call backend unreachable for hangup of call %s: %v", callID, err)
		c.setAvailability(0)
		return OutcomeUnreachable
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	c.setAvailability(1)

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return OutcomeAcknowledged
	}

	c.logger.Warnf("call backend rejected hangup of call %s with status %d", callID, resp.StatusCode)
	return OutcomeRejected
}

func (c *Client) setAvailability(v float64) {
	if err := c.monitor.SetDependencyAvailability(map[string]string{"dependency": dependencyName}, v); err != nil {
		c.logger.Errorf("failed to set dependency availability metric: %v", err)
	}
}
