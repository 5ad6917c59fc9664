package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Per-operation timeouts.
const (
	probeTimeout  = 5 * time.Second
	fetchTimeout  = 10 * time.Second
	lookupTimeout = 15 * time.Second
	createTimeout = 20 * time.Second
)

const maxResponseSize = 16 << 20

// Config holds the connection settings of one *arr instance.
type Config struct {
	URL    string
	APIKey string
}

// Enabled reports whether both the URL and API key are set.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.URL) != "" && strings.TrimSpace(c.APIKey) != ""
}

// requestConfig describes one API call.
type requestConfig struct {
	method  string
	path    string
	query   url.Values
	body    any
	timeout time.Duration
}

// arrClient speaks the *arr v3 HTTP API.
type arrClient struct {
	name       string
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *zap.Logger
}

func newArrClient(name string, cfg Config, logger *zap.Logger) *arrClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("catalog", name))

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        name + "-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A validation error means the service is healthy.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &arrClient{
		name:       name,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.URL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{},
		breaker:    breaker,
		logger:     logger,
	}
}

// do executes a request through the breaker and decodes the JSON response into result.
func (c *arrClient) do(ctx context.Context, cfg requestConfig, result any) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	data, err := c.breaker.Execute(func() ([]byte, error) {
		return c.roundTrip(ctx, cfg)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%s %s: %w: %v", c.name, cfg.path, ErrTransport, err)
		}
		return err
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("%s %s: %w: decode response: %v", c.name, cfg.path, ErrTransport, err)
		}
	}
	return nil
}

func (c *arrClient) roundTrip(ctx context.Context, cfg requestConfig) ([]byte, error) {
	var body io.Reader = http.NoBody
	if cfg.body != nil {
		payload, err := json.Marshal(cfg.body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode request: %w", c.name, cfg.path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cfg.method, c.baseURL+cfg.path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: create request: %v", c.name, cfg.path, ErrTransport, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if cfg.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(cfg.query) > 0 {
		req.URL.RawQuery = cfg.query.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", c.name, cfg.path, ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: read response: %v", c.name, cfg.path, ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := upstreamMessage(data)
		switch resp.StatusCode {
		case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
			return nil, fmt.Errorf("%s %s: %w: %s", c.name, cfg.path, ErrRejected, msg)
		default:
			return nil, fmt.Errorf("%s %s: %w: HTTP %d: %s", c.name, cfg.path, ErrTransport, resp.StatusCode, msg)
		}
	}

	return data, nil
}

type systemStatus struct {
	Version string `json:"version"`
	AppName string `json:"appName"`
}

// status probes /api/v3/system/status.
func (c *arrClient) status(ctx context.Context) (*systemStatus, error) {
	var status systemStatus
	err := c.do(ctx, requestConfig{
		method:  http.MethodGet,
		path:    "/api/v3/system/status",
		timeout: probeTimeout,
	}, &status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
