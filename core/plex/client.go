package plex

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"media-sync/core/reconcile"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultMetadataURL = "https://metadata.provider.plex.tv"
	DefaultAccountURL  = "https://plex.tv"

	probeTimeout   = 5 * time.Second
	requestTimeout = 20 * time.Second

	maxResponseSize = 16 << 20
	userAgent       = "media-sync"
)

// Config holds the discovery service settings.
type Config struct {
	Token         string
	RSSURL        string
	FriendsRSSURL string

	// MetadataURL and AccountURL default to the public Plex endpoints.
	MetadataURL string
	AccountURL  string

	// RequestsPerSecond paces all outgoing requests. Zero means 5.
	RequestsPerSecond float64
	// PageSize is the watchlist listing page size. Zero means 100.
	PageSize int
}

// FeedMode reports whether at least one RSS feed is configured.
func (c Config) FeedMode() bool {
	return strings.TrimSpace(c.RSSURL) != "" || strings.TrimSpace(c.FriendsRSSURL) != ""
}

// Client talks to the Plex discovery and account APIs.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient creates a client, filling unset config fields with defaults.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.RSSURL = strings.TrimSpace(cfg.RSSURL)
	cfg.FriendsRSSURL = strings.TrimSpace(cfg.FriendsRSSURL)
	if cfg.MetadataURL == "" {
		cfg.MetadataURL = DefaultMetadataURL
	}
	if cfg.AccountURL == "" {
		cfg.AccountURL = DefaultAccountURL
	}
	cfg.MetadataURL = strings.TrimRight(cfg.MetadataURL, "/")
	cfg.AccountURL = strings.TrimRight(cfg.AccountURL, "/")
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:     logger.With(zap.String("service", "plex")),
	}
}

// request describes one GET.
type request struct {
	url     string
	query   url.Values
	headers map[string]string
	accept  string
	timeout time.Duration
}

// get performs a paced GET and returns the body and response headers.
func (c *Client) get(ctx context.Context, r request) ([]byte, http.Header, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, nil, fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	if c.cfg.Token != "" {
		req.Header.Set("X-Plex-Token", c.cfg.Token)
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if len(r.query) > 0 {
		q := req.URL.Query()
		for k, vs := range r.query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, strings.TrimSpace(truncate(string(body), 200)))
	}
	return body, resp.Header, nil
}

func (c *Client) getJSON(ctx context.Context, r request, result any) (http.Header, error) {
	body, header, err := c.get(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return header, nil
}

// TestConnection validates the token against the account API.
func (c *Client) TestConnection(ctx context.Context) reconcile.ConnectionStatus {
	if c.cfg.Token == "" {
		return reconcile.ConnectionStatus{Detail: "Plex token is not configured"}
	}

	var user struct {
		Username string `json:"username"`
	}
	if _, err := c.getJSON(ctx, request{url: c.cfg.AccountURL + "/api/v2/user", timeout: probeTimeout}, &user); err != nil {
		return reconcile.ConnectionStatus{Detail: err.Error()}
	}
	detail := "Plex Token Valid"
	if user.Username != "" {
		detail = fmt.Sprintf("Plex Token Valid (%s)", user.Username)
	}
	return reconcile.ConnectionStatus{OK: true, Detail: detail}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
