package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"projectboard/internal/session"
	"projectboard/pkg/metrics"
)

// UnauthorizedListener is invoked after a 401 has invalidated the local
// session, so state owners can observe the invalidation instead of
// discovering stale storage later.
type UnauthorizedListener func()

// Client is the single request pipeline for all backend calls. It attaches
// the bearer token from the session store to every request and normalizes
// all failures into *Error.
type Client struct {
	baseURL    string
	store      session.Store
	httpClient *http.Client
	logger     *zap.Logger

	mu        sync.Mutex
	listeners []UnauthorizedListener
}

func NewClient(baseURL string, store session.Store, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   store,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// OnUnauthorized registers a listener for 401-triggered invalidation.
func (c *Client) OnUnauthorized(fn UnauthorizedListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	start := time.Now()
	labelPath := metricPath(path)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.logger.Error("Failed to marshal request body",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err),
			)
			return &Error{Kind: KindTransport, Message: GenericMessage}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Message: GenericMessage}
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.store.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPIRequestDuration(method, labelPath, "error", time.Since(start))
		c.logger.Error("Request failed without a response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return &Error{Kind: KindTransport, Message: GenericMessage}
	}
	defer resp.Body.Close()

	metrics.RecordAPIRequestDuration(method, labelPath, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Error("Failed to decode response body",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err),
			)
			return &Error{Kind: KindUnknown, Status: resp.StatusCode, Message: GenericMessage}
		}
		return nil
	}

	data, _ := io.ReadAll(resp.Body)
	apiErr := normalize(resp.StatusCode, data)

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateSession(ctx)
	}

	c.logger.Debug("Request failed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("message", apiErr.Message),
	)
	return apiErr
}

// metricPath collapses numeric path segments to :id so the metric label
// set stays bounded instead of growing one value per resource.
func metricPath(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if isDigits(s) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// invalidateSession clears the store and tells listeners, then lets the
// error propagate to the caller. Callers still show their own failure
// notification; nothing is suppressed here.
func (c *Client) invalidateSession(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Warn("Failed to clear session after 401", zap.Error(err))
	}

	c.mu.Lock()
	listeners := make([]UnauthorizedListener, len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
