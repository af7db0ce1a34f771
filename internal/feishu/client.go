package feishu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/relaykit/feishu-relay/internal/logging"
	"github.com/relaykit/feishu-relay/internal/metrics"
)

const (
	// DefaultMaxAttempts bounds the total number of webhook POSTs per send.
	DefaultMaxAttempts = 3

	// DefaultConnectTimeout and DefaultReadTimeout together bound one HTTP
	// exchange; net/http exposes a single deadline, so the client timeout is
	// their sum.
	DefaultConnectTimeout = 5 * time.Second
	DefaultReadTimeout    = 10 * time.Second

	// DefaultInitialBackoff seeds the exponential backoff between attempts.
	DefaultInitialBackoff = 1 * time.Second
)

// Result is the provider-level outcome of one completed webhook exchange.
// Code 0 means the provider accepted the message; any other code is a
// provider rejection, which is reported here rather than as an error.
type Result struct {
	Success bool
	Code    int
	Message string
	Raw     map[string]any
}

// SleepFunc waits for d or until ctx is done. Tests substitute one to observe
// backoff without waiting.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option customizes client behavior.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for webhook POSTs.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the per-attempt deadline on the configured HTTP
// client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMaxAttempts overrides the total attempt budget.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithInitialBackoff overrides the first inter-attempt delay.
func WithInitialBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.baseBackoff = d
		}
	}
}

// WithSleep overrides how the client waits between attempts.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// Client posts notification payloads to Feishu custom-bot webhooks with
// bounded retry.
type Client struct {
	httpClient  *http.Client
	logger      *logging.Logger
	maxAttempts int
	baseBackoff time.Duration
	sleep       SleepFunc
}

// NewClient constructs a webhook client with default timeouts and retry
// budget.
func NewClient(logger *logging.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultConnectTimeout + DefaultReadTimeout},
		logger:      logger.WithComponent("feishu"),
		maxAttempts: DefaultMaxAttempts,
		baseBackoff: DefaultInitialBackoff,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Send validates the inputs, builds the payload for kind, and posts it to
// webhookURL, retrying transient failures. The returned Result carries the
// provider's verdict; a provider-level rejection (nonzero code in a 2xx body)
// is not an error. title is only consulted for KindPost.
func (c *Client) Send(ctx context.Context, webhookURL, message string, kind MessageKind, title string) (*Result, error) {
	if err := validateSend(webhookURL, message, kind, title); err != nil {
		return nil, err
	}
	body, _ := json.Marshal(BuildPayload(message, kind, title))

	start := time.Now()
	result, err := c.sendWithRetry(ctx, webhookURL, body)
	metrics.SendDuration.Observe(time.Since(start).Seconds())
	return result, err
}

func validateSend(webhookURL, message string, kind MessageKind, title string) error {
	if webhookURL == "" {
		return &ValidationError{Message: "webhook_url is required"}
	}
	if !strings.HasPrefix(webhookURL, "https://") {
		return &ValidationError{Message: "webhook_url must start with https://"}
	}
	if strings.TrimSpace(message) == "" {
		return &ValidationError{Message: "message cannot be empty"}
	}
	if !kind.Valid() {
		return &ValidationError{Message: fmt.Sprintf("msg_type must be one of: %v", Kinds())}
	}
	if kind == KindPost && title == "" {
		return &ValidationError{Message: "title is required for post message type"}
	}
	return nil
}

// attempt performs a single webhook POST and classifies the response. It
// returns a Result only when the exchange reached the provider and produced a
// parsable verdict; everything else is a typed error.
func (c *Client) attempt(ctx context.Context, webhookURL string, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Message: "Network error: " + err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Message: "Network error: " + err.Error(), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode)
	}

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &NetworkError{Message: "Invalid JSON response: " + err.Error(), Err: err}
	}
	if jsonIntIs(raw, "code", 0) || jsonIntIs(raw, "StatusCode", 0) {
		return &Result{Success: true, Code: 0, Message: "ok", Raw: raw}, nil
	}

	code := -1
	if v, ok := jsonInt(raw, "code"); ok {
		code = v
	}
	msg := "Unknown error"
	if v, ok := raw["msg"].(string); ok && v != "" {
		msg = v
	}
	return &Result{Success: false, Code: code, Message: msg, Raw: raw}, nil
}

// classifyStatus maps a non-2xx HTTP status to the retry semantics it
// deserves: 429 is retryable with doubled backoff, other 4xx are terminal,
// everything else is retryable.
func classifyStatus(status int) error {
	reason := http.StatusText(status)
	switch {
	case status == http.StatusTooManyRequests:
		return &NetworkError{
			Message:     fmt.Sprintf("Rate limited (429): %s", reason),
			RateLimited: true,
		}
	case status >= 400 && status < 500:
		return &ValidationError{Message: fmt.Sprintf("Client error (%d): %s", status, reason)}
	default:
		return &NetworkError{Message: fmt.Sprintf("Server error (%d): %s", status, reason)}
	}
}

// jsonInt extracts an integer field from a decoded JSON object. Numbers
// arrive as float64; some bot endpoints send codes as strings.
func jsonInt(raw map[string]any, key string) (int, bool) {
	switch v := raw[key].(type) {
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func jsonIntIs(raw map[string]any, key string, want int) bool {
	v, ok := jsonInt(raw, key)
	return ok && v == want
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
