package opnsense

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// maxErrorBody caps how much of an error body is echoed into APIError.Message.
const maxErrorBody = 512

// RequestObserver receives one callback per API request.
type RequestObserver interface {
	ObserveRequest(module, controller, command string, statusCode int, elapsed time.Duration)
}

// Client is the appliance API session. It is safe for concurrent use.
type Client struct {
	base       *url.URL
	key        string
	secret     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *zap.Logger
	observer   RequestObserver
}

// NewClient creates a new API client based on the configuration.
// The observer may be nil.
func NewClient(cfg Config, logger *zap.Logger, observer RequestObserver) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("api url is required")
	}
	raw := cfg.URL
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	base, err := url.Parse(strings.TrimSuffix(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", cfg.URL, err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: missing host", cfg.URL)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 20
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	tlsConfig := &tls.Config{InsecureSkipVerify: !cfg.SSLVerify} //nolint:gosec // appliances commonly run self-signed certificates
	if cfg.SSLCAFile != "" {
		pem, err := os.ReadFile(cfg.SSLCAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read ca file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.SSLCAFile)
		}
		tlsConfig.RootCAs = pool
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig:       tlsConfig,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		base:   base,
		key:    cfg.Key,
		secret: cfg.Secret,
		httpClient: &http.Client{
			Timeout:   timeoutDuration,
			Transport: transport,
		},
		limiter:  limiter,
		logger:   logger,
		observer: observer,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Get performs a read call.
func (c *Client) Get(ctx context.Context, call Call) (*Response, error) {
	return c.do(ctx, http.MethodGet, call)
}

// Add performs a create call.
func (c *Client) Add(ctx context.Context, call Call) (*Response, error) {
	return c.mutate(ctx, call)
}

// Set performs an update call. Service reloads are issued through Set as well.
func (c *Client) Set(ctx context.Context, call Call) (*Response, error) {
	return c.mutate(ctx, call)
}

// Delete performs a delete call.
func (c *Client) Delete(ctx context.Context, call Call) (*Response, error) {
	return c.mutate(ctx, call)
}

func (c *Client) mutate(ctx context.Context, call Call) (*Response, error) {
	resp, err := c.do(ctx, http.MethodPost, call)
	if err != nil {
		return nil, err
	}

	var result MutationResult
	if len(bytes.TrimSpace(resp.Body)) > 0 && json.Unmarshal(resp.Body, &result) == nil && result.Failed() {
		return nil, &APIError{
			Path:        call.Path(),
			StatusCode:  resp.StatusCode,
			Message:     "appliance rejected the change",
			Validations: result.Validations,
		}
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method string, call Call) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	var body io.Reader
	if method != http.MethodGet && call.Data != nil {
		payload, err := json.Marshal(call.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request for %s: %w", call.Path(), err)
		}
		body = bytes.NewReader(payload)
	}

	endpoint := c.base.String() + "/api/" + call.Path()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.key, c.secret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.observe(call, 0, elapsed)
		return nil, &APIError{Path: call.Path(), Message: err.Error()}
	}
	defer httpResp.Body.Close()
	c.observe(call, httpResp.StatusCode, elapsed)

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response for %s: %w", call.Path(), err)
	}

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", call.Path()),
		zap.Int("status", httpResp.StatusCode),
		zap.Duration("elapsed", elapsed),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &APIError{Path: call.Path(), StatusCode: httpResp.StatusCode, Message: msg}
	}

	return &Response{StatusCode: httpResp.StatusCode, Body: data}, nil
}

func (c *Client) observe(call Call, status int, elapsed time.Duration) {
	if c.observer != nil {
		c.observer.ObserveRequest(call.Module, call.Controller, call.Command, status, elapsed)
	}
}
