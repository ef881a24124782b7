package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	apperrors "github.com/cinetrack/cinetrack/pkg/errors"
	"github.com/cinetrack/cinetrack/pkg/logger"
	"github.com/cinetrack/cinetrack/pkg/metrics"
)

const (
	defaultBaseURL = "https://api.tvmaze.com"

	retryAttempts  = 3
	retryBaseDelay = 4 * time.Second
	retryMaxDelay  = 10 * time.Second
)

// Client fetches JSON documents from the TVMaze API. Transient failures
// (network errors and 5xx responses) are retried with exponential backoff;
// a 429 aborts immediately so the provider is not hammered further.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryBase  time.Duration
	retryMax   time.Duration
	log        *zap.Logger
}

// ClientOption customises a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the provider base URL, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRetryBackoff overrides the backoff window between retries.
func WithRetryBackoff(base, max time.Duration) ClientOption {
	return func(c *Client) {
		c.retryBase = base
		c.retryMax = max
	}
}

// NewClient builds a TVMaze client with sane timeouts.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		retryBase:  retryBaseDelay,
		retryMax:   retryMaxDelay,
		log:        logger.WithModule("content.client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.statusCode)
}

// getJSON fetches path with the given query parameters and decodes the
// response into out. The returned error is always an *apperrors.AppError.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	if len(params) > 0 {
		if strings.Contains(endpoint, "?") {
			endpoint += "&" + params.Encode()
		} else {
			endpoint += "?" + params.Encode()
		}
	}

	var body []byte
	err := retry.Do(
		func() error {
			data, err := c.fetch(ctx, endpoint)
			if err != nil {
				return err
			}
			body = data
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(retryAttempts),
		retry.Delay(c.retryBase),
		retry.MaxDelay(c.retryMax),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			metrics.UpstreamRetries.Inc()
			c.log.Warn("retrying upstream request",
				zap.String("url", endpoint),
				zap.Uint("attempt", attempt+1),
				zap.Error(err))
		}),
	)
	if err != nil {
		return c.classify(endpoint, err)
	}

	metrics.UpstreamRequests.WithLabelValues("ok").Inc()
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.ErrUpstream.WithInternal(fmt.Errorf("decode upstream response: %w", err))
	}
	return nil
}

// fetch performs one HTTP round trip. Retryable failures come back as plain
// errors; everything the retry loop must not repeat is marked unrecoverable.
func (c *Client) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Unrecoverable(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, retry.Unrecoverable(&statusError{statusCode: resp.StatusCode})
	case resp.StatusCode >= 500:
		return nil, &statusError{statusCode: resp.StatusCode, body: string(body)}
	case resp.StatusCode >= 400:
		return nil, retry.Unrecoverable(&statusError{statusCode: resp.StatusCode, body: string(body)})
	}

	return body, nil
}

func (c *Client) classify(endpoint string, err error) error {
	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.statusCode == http.StatusTooManyRequests:
			metrics.UpstreamRequests.WithLabelValues("rate_limited").Inc()
			c.log.Warn("upstream rate limit exceeded", zap.String("url", endpoint))
			return apperrors.ErrUpstreamRateLimited
		case se.statusCode == http.StatusNotFound:
			return apperrors.ErrNotFound
		}
	}

	metrics.UpstreamRequests.WithLabelValues("error").Inc()
	c.log.Error("upstream request failed", zap.String("url", endpoint), zap.Error(err))
	return apperrors.ErrUpstream.WithInternal(err)
}
