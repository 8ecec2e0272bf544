// Package gateway implements the HTTP client for the remote data gateway,
// the external service owning the durable record of users and jobs.
//
// The protocol is action-based: reads go through GET query parameters,
// writes are JSON bodies POSTed as text/plain (the gateway parses JSON out
// of the text body; the original deployment used this to avoid CORS
// preflight negotiation). Every call is a single request/response exchange
// with no retry.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobdesk/dashboard-system/internal/api/metrics"
	"github.com/jobdesk/dashboard-system/internal/core/domain"
	"github.com/jobdesk/dashboard-system/internal/core/ports"
)

const (
	defaultTimeout = 15 * time.Second

	// urlPlaceholder is the marker left in unconfigured deployments.
	urlPlaceholder = "YOUR_DEPLOYMENT_ID"

	contentTypeText = "text/plain;charset=utf-8"
)

// Config captures the settings for reaching the gateway.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the remote data gateway. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient validates the gateway address and returns a ready client.
// An empty or placeholder URL is a configuration error, fatal at startup.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" || strings.Contains(cfg.BaseURL, urlPlaceholder) {
		return nil, domain.ErrGatewayNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}, nil
}

// GetInitialData fetches the complete set of users and jobs.
func (c *Client) GetInitialData(ctx context.Context) (*domain.Snapshot, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?action=getInitialData", nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequestDuration.WithLabelValues("getInitialData", "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("fetch initial data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.GatewayRequestDuration.WithLabelValues("getInitialData", "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("fetch initial data: unexpected status %s", resp.Status)
	}

	var data initialDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		metrics.GatewayRequestDuration.WithLabelValues("getInitialData", "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("decode initial data: %w", err)
	}

	snapshot := &domain.Snapshot{
		Users: make([]domain.User, 0, len(data.Users)),
		Jobs:  make([]domain.Job, 0, len(data.Jobs)),
	}
	for _, u := range data.Users {
		snapshot.Users = append(snapshot.Users, u.toDomain().StripPassword())
	}
	for _, w := range data.Jobs {
		job, err := w.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode initial data: %w", err)
		}
		snapshot.Jobs = append(snapshot.Jobs, job)
	}
	domain.SortJobsByCreatedAt(snapshot.Jobs)

	metrics.GatewayRequestDuration.WithLabelValues("getInitialData", "success").Observe(time.Since(start).Seconds())
	return snapshot, nil
}

// Register creates a user on the gateway and returns the assigned profile.
func (c *Client) Register(ctx context.Context, user ports.NewUser) (*domain.User, error) {
	payload := map[string]any{
		"action": "register",
		"user": wireUser{
			Email:     user.Email,
			Password:  user.Password,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      user.Role,
			AvatarURL: user.AvatarURL,
		},
	}
	env, err := c.post(ctx, "register", payload)
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, &domain.GatewayError{Action: "register", Message: "gateway returned no user"}
	}
	registered := env.User.toDomain()
	return &registered, nil
}

// Login authenticates against the gateway.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	env, err := c.post(ctx, "login", map[string]any{
		"action":   "login",
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if env.User == nil {
		return nil, &domain.GatewayError{Action: "login", Message: "gateway returned no user"}
	}
	user := env.User.toDomain()
	return &user, nil
}

// AddJob creates a job on the gateway and returns the authoritative copy
// with gateway-assigned id, status and creation time.
func (c *Client) AddJob(ctx context.Context, draft ports.JobDraft) (*domain.Job, error) {
	payload := map[string]any{
		"action": "addJob",
		"job": map[string]any{
			"title":            draft.Title,
			"description":      draft.Description,
			"dueDate":          draft.DueDate.UTC().Format(time.RFC3339Nano),
			"salespersonId":    draft.SalespersonID,
			"supportHandlerId": draft.SupportHandlerID,
		},
	}
	env, err := c.post(ctx, "addJob", payload)
	if err != nil {
		return nil, err
	}
	return c.jobFromEnvelope("addJob", env)
}

// UpdateJobStatus applies a status change and returns the authoritative job,
// which carries gateway-computed completion fields.
func (c *Client) UpdateJobStatus(ctx context.Context, jobID string, status domain.JobStatus) (*domain.Job, error) {
	env, err := c.post(ctx, "updateJobStatus", map[string]any{
		"action": "updateJobStatus",
		"jobId":  jobID,
		"status": string(status),
	})
	if err != nil {
		return nil, err
	}
	return c.jobFromEnvelope("updateJobStatus", env)
}

// DeleteJob removes a job from the gateway.
func (c *Client) DeleteJob(ctx context.Context, jobID string) error {
	_, err := c.post(ctx, "deleteJob", map[string]any{
		"action": "deleteJob",
		"jobId":  jobID,
	})
	return err
}

func (c *Client) jobFromEnvelope(action string, env *responseEnvelope) (*domain.Job, error) {
	if env.Job == nil {
		return nil, &domain.GatewayError{Action: action, Message: "gateway returned no job"}
	}
	job, err := env.Job.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%s response: %w", action, err)
	}
	return &job, nil
}

// post sends one action request and decodes the response envelope. A
// non-success envelope becomes a GatewayError carrying the gateway message.
func (c *Client) post(ctx context.Context, action string, payload any) (*responseEnvelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", contentTypeText)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.GatewayRequestDuration.WithLabelValues(action, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("%s request: %w", action, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.GatewayRequestDuration.WithLabelValues(action, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("read %s response: %w", action, err)
	}

	var env responseEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		metrics.GatewayRequestDuration.WithLabelValues(action, "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("decode %s response: %w", action, err)
	}

	if env.Status != "success" {
		metrics.GatewayRequestDuration.WithLabelValues(action, "rejected").Observe(time.Since(start).Seconds())
		c.log.Warn().Str("action", action).Str("message", env.Message).Msg("gateway rejected request")
		return nil, &domain.GatewayError{Action: action, Message: env.Message}
	}

	metrics.GatewayRequestDuration.WithLabelValues(action, "success").Observe(time.Since(start).Seconds())
	return &env, nil
}
