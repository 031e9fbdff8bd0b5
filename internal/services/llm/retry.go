package llm

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
)

const (
	defaultRetryAttempts  = 4
	defaultRetryBaseDelay = time.Second
	defaultRetryMaxDelay  = 10 * time.Second
)

type retrySettings struct {
	attempts  int
	baseDelay time.Duration
	maxDelay  time.Duration
}

func defaultRetrySettings() retrySettings {
	return retrySettings{
		attempts:  defaultRetryAttempts,
		baseDelay: defaultRetryBaseDelay,
		maxDelay:  defaultRetryMaxDelay,
	}
}

func (c *Client) retryExecutor(ctx context.Context) failsafe.Executor[string] {
	attempts := c.retry.attempts
	if attempts < 1 {
		attempts = 1
	}
	builder := retrypolicy.Builder[string]().
		HandleIf(func(_ string, err error) bool { return retryable(err) }).
		WithMaxRetries(attempts - 1).
		ReturnLastFailure()
	if c.retry.baseDelay > 0 {
		maxDelay := c.retry.maxDelay
		if maxDelay < c.retry.baseDelay {
			maxDelay = c.retry.baseDelay
		}
		builder = builder.WithBackoff(c.retry.baseDelay, maxDelay)
	}
	return failsafe.NewExecutor[string](builder.Build()).WithContext(ctx)
}

// retryable reports whether a failed attempt is worth repeating: rate
// limits, server errors, timeouts, and empty completions.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var emptyErr *emptyContentError
	if errors.As(err, &emptyErr) {
		return true
	}
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusRequestTimeout ||
			statusErr.StatusCode == http.StatusTooManyRequests ||
			statusErr.StatusCode >= http.StatusInternalServerError
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
