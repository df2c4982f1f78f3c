package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	headerAccessToken = "X-Shopify-Storefront-Access-Token"
	headerRequestID   = "X-Request-Id"

	maxResponseBytes = 16 << 20
)

// Client is an authenticated channel to a Storefront GraphQL endpoint.
// It is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger

	baseDelay time.Duration
	maxDelay  time.Duration
}

// NewClient fails with a *ConfigurationError when the endpoint or token is empty.
// A nil httpClient gets one with cfg.Timeout (10s by default).
func NewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)
	cfg.Token = strings.TrimSpace(cfg.Token)

	var missing []string
	if cfg.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if cfg.Token == "" {
		missing = append(missing, "token")
	}
	if len(missing) > 0 {
		return nil, &ConfigurationError{Missing: missing}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	switch {
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = defaultMaxRetries
	case cfg.MaxRetries < 0:
		cfg.MaxRetries = 0
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger.With("component", "storefront"),
		baseDelay:  retryBaseDelay,
		maxDelay:   retryMaxDelay,
	}, nil
}

// MustNewClient panics on misconfiguration; for process start-up only.
func MustNewClient(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	c, err := NewClient(cfg, httpClient, logger)
	if err != nil {
		panic(err)
	}
	return c
}

// Do executes op and decodes the "data" member into out.
// Every failure is returned as a *RequestError.
func (c *Client) Do(ctx context.Context, op Operation, variables map[string]any, out any) error {
	body, err := json.Marshal(graphQLRequest{
		Query:         op.Document,
		OperationName: op.Name,
		Variables:     variables,
	})
	if err != nil {
		return &RequestError{Operation: op.Name, Err: fmt.Errorf("json.Marshal: %w", err)}
	}

	for attempt := 0; ; attempt++ {
		err = c.do(ctx, op, body, out)
		if err == nil || attempt >= c.config.MaxRetries || !isRetryable(err) {
			return err
		}

		delay := backoff(c.baseDelay, c.maxDelay, attempt)
		c.logger.WarnContext(ctx, "storefront request retry",
			slog.String("operation", op.Name),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.Any("err", err))

		if sleepErr := sleepWithContext(ctx, delay); sleepErr != nil {
			return &RequestError{Operation: op.Name, Err: errors.Join(err, sleepErr)}
		}
	}
}

func (c *Client) do(ctx context.Context, op Operation, body []byte, out any) error {
	requestID := uuid.NewString()
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return &RequestError{Operation: op.Name, Err: fmt.Errorf("http.NewRequest: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAccessToken, c.config.Token)
	req.Header.Set(headerRequestID, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Operation: op.Name, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &RequestError{Operation: op.Name, StatusCode: resp.StatusCode, Err: fmt.Errorf("io.ReadAll: %w", err)}
	}

	c.logger.DebugContext(ctx, "storefront request",
		slog.String("operation", op.Name),
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return &RequestError{Operation: op.Name, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}

	var envelope GraphQLResponse[json.RawMessage]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &RequestError{Operation: op.Name, Err: fmt.Errorf("json.Unmarshal: %w", err)}
	}
	if len(envelope.Errors) > 0 {
		return &RequestError{
			Operation: op.Name,
			Throttled: isThrottleGraphQLError(envelope.Errors),
			Err:       fmt.Errorf("graphql errors: %s", formatGraphQLErrors(envelope.Errors)),
		}
	}
	if out == nil {
		return nil
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return &RequestError{Operation: op.Name, Err: errors.New("response missing data")}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &RequestError{Operation: op.Name, Err: fmt.Errorf("decode data: %w", err)}
	}

	return nil
}
