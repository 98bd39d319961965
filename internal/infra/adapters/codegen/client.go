// File: internal/infra/adapters/codegen/client.go
package codegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"codegen-agent-gateway/internal/domain"
	"codegen-agent-gateway/internal/domain/model"
	"codegen-agent-gateway/internal/domain/ports/adapter"
	"codegen-agent-gateway/internal/infra/logging"
	"codegen-agent-gateway/internal/infra/metrics"
)

var _ adapter.AgentServiceAdapter = (*Client)(nil)

const defaultBaseURL = "https://api.codegen.com/v1"

// Client implements adapter.AgentServiceAdapter against the Codegen REST API.
// One run maps onto POST /organizations/{org}/agent/run plus GET polls of the
// same resource.
type Client struct {
	orgID    string
	apiToken string
	base     string
	client   *http.Client
	log      *zerolog.Logger
}

func NewClient(orgID, apiToken, baseURL string, timeout time.Duration, logger *zerolog.Logger) (*Client, error) {
	if orgID == "" {
		return nil, fmt.Errorf("%w: org id empty", domain.ErrInvalidArgument)
	}
	if apiToken == "" {
		return nil, fmt.Errorf("%w: api token empty", domain.ErrInvalidArgument)
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		orgID:    orgID,
		apiToken: apiToken,
		base:     strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		log:      logger,
	}, nil
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s/organizations/%s/agent/run%s", c.base, c.orgID, path)
}

// agentRunEnvelope is the wire shape shared by the create and get endpoints.
// Null status/result/error decode to empty strings; a missing id decodes to 0.
type agentRunEnvelope struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	Result       string `json:"result"`
	ErrorMessage string `json:"error_message"`
}

func (e *agentRunEnvelope) apply(task *model.AgentTask) {
	if e.ID != 0 {
		task.ID = strconv.FormatInt(e.ID, 10)
	}
	task.Status = model.ParseTaskStatus(e.Status)
	task.Result = e.Result
	task.ErrorMessage = e.ErrorMessage
}

// Submit starts a run. The X-Request-ID header carries a ULID so the call can
// be correlated with the remote service's logs before a task id exists.
func (c *Client) Submit(ctx context.Context, prompt string) (*model.AgentTask, error) {
	payload := map[string]any{"prompt": prompt}
	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(""), bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	reqID := ulid.Make().String()
	c.decorate(req, reqID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit agent run: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("submit agent run http %d", resp.StatusCode)
	}

	var out agentRunEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode agent run: %w", err)
	}
	task := &model.AgentTask{}
	out.apply(task)

	logging.With(ctx, c.log).Debug().
		Str("request_id", reqID).
		Str("task_id", task.ID).
		Str("status", task.Status.Raw).
		Msg("agent run submitted")
	return task, nil
}

// Refresh overwrites the task's status, result and error message with the
// remote state. The task id is kept as-is.
func (c *Client) Refresh(ctx context.Context, task *model.AgentTask) error {
	if task == nil || task.ID == "" {
		return errors.New("refresh agent run: task has no id")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/"+task.ID), nil)
	if err != nil {
		return err
	}
	c.decorate(req, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("refresh agent run %s: %w", task.ID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("refresh agent run %s http %d", task.ID, resp.StatusCode)
	}

	var out agentRunEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode agent run %s: %w", task.ID, err)
	}
	out.apply(task)
	metrics.IncPollRefresh()
	return nil
}

func (c *Client) decorate(req *http.Request, requestID string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}
}
