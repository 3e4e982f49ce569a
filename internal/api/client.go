// Package api implements the HTTP client for the DTV reply service.
package api

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/diogo/dtvchat/internal/errors"
	"github.com/diogo/dtvchat/internal/logging"
	"github.com/diogo/dtvchat/internal/models"
)

// DefaultTimeoutSeconds is the transport timeout. The chat view itself
// enforces none.
const DefaultTimeoutSeconds = 300

// maxBodySize caps how much of a response body is read
const maxBodySize = 4 << 20

// maxErrorBodySize caps the body kept on an APIError
const maxErrorBodySize = 4096

// HTTPDoer is the subset of tls_client.HttpClient the reply client needs
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReplyClientInterface is implemented by ReplyClient and by test doubles
type ReplyClientInterface interface {
	GenerateReply(ctx context.Context, clientSequence string, history []models.Message) (*models.ReplyResponse, error)
	Health(ctx context.Context) (models.HealthStatus, error)
	BaseURL() string
	Close()
}

// ReplyClient talks to the reply service
type ReplyClient struct {
	httpClient     HTTPDoer
	baseURL        string
	timeoutSeconds int
	logger         *zap.Logger
	newRequestID   func() string
	mu             sync.RWMutex
	closed         bool
}

var _ ReplyClientInterface = (*ReplyClient)(nil)

// ClientOption is a function that configures the client
type ClientOption func(*ReplyClient)

// WithHTTPClient replaces the TLS transport, mainly for tests
func WithHTTPClient(doer HTTPDoer) ClientOption {
	return func(c *ReplyClient) {
		c.httpClient = doer
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *ReplyClient) {
		c.logger = logging.OrNop(logger)
	}
}

// WithTimeoutSeconds sets the transport timeout of the default HTTP client
func WithTimeoutSeconds(seconds int) ClientOption {
	return func(c *ReplyClient) {
		c.timeoutSeconds = seconds
	}
}

// WithRequestIDFunc overrides how X-Request-ID values are generated
func WithRequestIDFunc(fn func() string) ClientOption {
	return func(c *ReplyClient) {
		if fn != nil {
			c.newRequestID = fn
		}
	}
}

// NewClient creates a ReplyClient for baseURL.
// An empty baseURL is accepted: every call then fails with a configuration
// error before touching the network.
func NewClient(baseURL string, opts ...ClientOption) (*ReplyClient, error) {
	client := &ReplyClient{
		baseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeoutSeconds: DefaultTimeoutSeconds,
		logger:         zap.NewNop(),
		newRequestID:   func() string { return uuid.NewString() },
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(client.timeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// BaseURL returns the configured reply service address
func (c *ReplyClient) BaseURL() string {
	return c.baseURL
}

// Close releases idle connections. Calls after Close fail.
func (c *ReplyClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	if idle, ok := c.httpClient.(interface{ CloseIdleConnections() }); ok {
		idle.CloseIdleConnections()
	}
}

// IsClosed returns whether the client is closed
func (c *ReplyClient) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// endpoint joins the base URL and path, failing with a configuration error
// when no base URL is set
func (c *ReplyClient) endpoint(path string) (string, error) {
	if c.baseURL == "" {
		return "", apierrors.NewMissingBackendURLError()
	}
	return c.baseURL + path, nil
}

// do sends req and returns the status and body
func (c *ReplyClient) do(ctx context.Context, req *http.Request, operation, endpoint string) (int, []byte, error) {
	if c.IsClosed() {
		return 0, nil, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, apierrors.ErrClientClosed)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	requestID := c.newRequestID()
	req.Header.Set("X-Request-ID", requestID)

	log := c.logger.With(
		zap.String("operation", operation),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		log.Warn("request failed", zap.Error(err))
		return 0, nil, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		log.Warn("reading response failed", zap.Error(err))
		return resp.StatusCode, nil, apierrors.NewNetworkErrorWithEndpoint(operation, endpoint, fmt.Errorf("failed to read response body: %w", err))
	}

	if len(body) > maxBodySize {
		log.Warn("response too large", zap.Int("status", resp.StatusCode))
		return resp.StatusCode, nil, apierrors.NewParseError(fmt.Sprintf("response too large: exceeds %d bytes", maxBodySize), endpoint)
	}

	log.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Int("body_bytes", len(body)),
	)

	return resp.StatusCode, body, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
