// Package transport is the single HTTP wrapper of the protocol layer: it
// POSTs envelope documents to the backend endpoint and coalesces
// concurrent requests for the same logical operation into one round trip.
// There is no retry, no backoff, and no request queue here: a failed
// call is terminal and must be reissued by the collaborator.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"salesdesk/internal/types"
)

// contentType is fixed by the backend.
const contentType = "application/xml"

// DefaultTimeout bounds a single round trip when the caller's context
// carries no earlier deadline.
const DefaultTimeout = 30 * time.Second

// Client posts envelopes to one backend endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      *zap.Logger
	group    singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests
// and custom TLS setups.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a transport client for the given endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends the wire body for the given operation and returns the raw
// response text. Calls for the same operation key issued while one is in
// flight are coalesced: later callers receive the result of the pending
// round trip instead of issuing a duplicate request. The coalescing entry
// is removed on completion whether the call succeeded or failed, so the
// next call after completion always hits the network again.
func (c *Client) Post(ctx context.Context, op types.Operation, body string) (string, error) {
	key := op.Key()
	res, err, shared := c.group.Do(key, func() (interface{}, error) {
		return c.post(ctx, op, body)
	})
	if shared {
		c.log.Debug("coalesced duplicate request", zap.String("operation", key))
	}
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// post performs the actual round trip. All network and HTTP-level
// failures are folded into TransportError.
func (c *Client) post(ctx context.Context, op types.Operation, body string) (string, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return "", &types.TransportError{Op: op.Name, Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("operation", op.Name),
			zap.Error(err))
		return "", &types.TransportError{Op: op.Name, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &types.TransportError{Op: op.Name, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("backend returned non-2xx status",
			zap.String("operation", op.Name),
			zap.Int("status", resp.StatusCode))
		return "", &types.TransportError{
			Op:  op.Name,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	c.log.Debug("round trip complete",
		zap.String("operation", op.Name),
		zap.Int("response_bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)))
	return string(raw), nil
}
