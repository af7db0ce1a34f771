package feishu

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/relaykit/feishu-relay/internal/logging"
	"github.com/relaykit/feishu-relay/internal/metrics"
)

// sendWithRetry executes attempts with exponential backoff until one yields a
// provider-level outcome. Only network errors are retried; validation errors,
// including 4xx responses other than 429, propagate immediately. A
// rate-limited attempt waits twice the current backoff before the next try.
func (c *Client) sendWithRetry(ctx context.Context, webhookURL string, body []byte) (*Result, error) {
	var lastErr *NetworkError
	backoff := c.baseBackoff

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		result, err := c.attempt(ctx, webhookURL, body)
		if err == nil {
			c.observeResult(webhookURL, result)
			return result, nil
		}

		var nerr *NetworkError
		if !errors.As(err, &nerr) {
			metrics.SendAttemptsTotal.WithLabelValues(metrics.ResultValidation).Inc()
			return nil, err
		}
		metrics.SendAttemptsTotal.WithLabelValues(metrics.ResultNetwork).Inc()
		lastErr = nerr

		if attempt == c.maxAttempts {
			break
		}

		wait := backoff
		if nerr.RateLimited {
			wait = backoff * 2
		}
		c.logger.Warn().
			Err(nerr).
			Int("attempt", attempt).
			Int("max_attempts", c.maxAttempts).
			Dur("wait", wait).
			Bool("rate_limited", nerr.RateLimited).
			Str("webhook", logging.RedactURL(webhookURL)).
			Msg("webhook attempt failed, retrying")
		metrics.RetriesTotal.WithLabelValues(strconv.FormatBool(nerr.RateLimited)).Inc()

		if err := c.sleep(ctx, wait); err != nil {
			return nil, &NetworkError{Message: "context canceled during retry: " + err.Error(), Err: err}
		}
		backoff *= 2
	}

	return nil, &NetworkError{
		Message:     fmt.Sprintf("all %d attempts failed: %v", c.maxAttempts, lastErr),
		RateLimited: lastErr.RateLimited,
		Err:         lastErr,
	}
}

func (c *Client) observeResult(webhookURL string, result *Result) {
	if result.Success {
		metrics.SendAttemptsTotal.WithLabelValues(metrics.ResultOK).Inc()
		return
	}
	metrics.SendAttemptsTotal.WithLabelValues(metrics.ResultRejected).Inc()
	c.logger.Warn().
		Int("code", result.Code).
		Str("msg", result.Message).
		Str("webhook", logging.RedactURL(webhookURL)).
		Msg("webhook rejected by provider")
}
