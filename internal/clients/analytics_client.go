package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/models"
)

// Remote aggregate endpoints under /analytics
const (
	AggregateDashboard     = "dashboard"
	AggregatePropertyTypes = "property-types"
	AggregateRankings      = "rankings"
	AggregatePortfolio     = "portfolio"
	AggregateCorrelations  = "correlations"
)

// Aggregates lists every remote aggregate fetched after a successful push
var Aggregates = []string{
	AggregateDashboard,
	AggregatePropertyTypes,
	AggregateRankings,
	AggregatePortfolio,
	AggregateCorrelations,
}

// ErrRemoteUnavailable wraps every failure talking to the remote analytics service
var ErrRemoteUnavailable = errors.New("remote analytics unavailable")

// maxResponseBytes bounds the size of a decoded response body
const maxResponseBytes = 8 << 20

// AnalyticsClient talks to the remote analytics backend
type AnalyticsClient interface {
	// PushSnapshot submits the full local snapshot
	PushSnapshot(ctx context.Context, snapshot *models.Snapshot) error
	// FetchAggregate returns the data payload of GET /analytics/<name>
	FetchAggregate(ctx context.Context, name string) (json.RawMessage, error)
	// BreakerState reports the circuit breaker state
	BreakerState() string
}

type analyticsClient struct {
	baseURL    string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// envelope is the remote response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Source  string          `json:"source"`
}

// NewAnalyticsClient creates a client for cfg.Remote.BaseURL. A single attempt is made per
// call; consecutive failures trip the breaker so a dead backend is not hammered.
func NewAnalyticsClient(cfg config.RemoteConfig, logger *logrus.Logger) AnalyticsClient {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}
	settings := gobreaker.Settings{
		Name:        "remote-analytics",
		MaxRequests: 1,
		Timeout:     cfg.OpenInterval,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"circuit_breaker": name,
				"from":            from.String(),
				"to":              to.String(),
			}).Warn("Circuit breaker state changed")
		},
	}

	return &analyticsClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cb:     gobreaker.NewCircuitBreaker(settings),
		logger: logger,
	}
}

func (c *analyticsClient) BreakerState() string {
	return c.cb.State().String()
}

func (c *analyticsClient) PushSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/sync/localstorage", body)
	return err
}

func (c *analyticsClient) FetchAggregate(ctx context.Context, name string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/analytics/"+name, nil)
}

// do executes one request through the breaker and unwraps the response envelope
func (c *analyticsClient) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.roundTrip(ctx, method, path, body)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrRemoteUnavailable, method, path, err)
	}
	return result.(json.RawMessage), nil
}

func (c *analyticsClient) roundTrip(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Internal-Service", "property-service")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if !env.Success {
		if env.Error == "" {
			env.Error = "success=false"
		}
		return nil, fmt.Errorf("remote error: %s", env.Error)
	}
	return env.Data, nil
}
