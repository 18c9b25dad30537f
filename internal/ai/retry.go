package ai

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	apperrors "resumeparser/internal/errors"
)

const (
	defaultRetryBaseDelay = time.Second
	maxRetryBackoff       = 30 * time.Second
)

// retrier runs a call up to maxRetries+1 times with exponential backoff
type retrier struct {
	maxRetries int
	baseDelay  time.Duration
	logger     *apperrors.Logger
}

func newRetrier(maxRetries int, logger *apperrors.Logger) retrier {
	return retrier{
		maxRetries: max(maxRetries, 0),
		baseDelay:  defaultRetryBaseDelay,
		logger:     logger,
	}
}

// executeWithRetry executes an LLM call with retry logic and exponential backoff
func executeWithRetry[T any](ctx context.Context, r retrier, operation string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			r.logger.Warn("Retrying LLM call",
				"operation", operation,
				"attempt", attempt,
				"max_retries", r.maxRetries,
				"error", lastErr.Error())

			select {
			case <-time.After(r.backoff(attempt)):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("LLM call succeeded after retry",
					"operation", operation,
					"total_attempts", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		// Don't retry on certain errors (auth, invalid input, etc.)
		if !isRetryableError(err) {
			r.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	if r.maxRetries == 0 {
		return zero, lastErr
	}

	r.logger.LogError(lastErr, "LLM call failed after all retry attempts",
		"operation", operation,
		"max_retries", r.maxRetries)

	return zero, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, r.maxRetries, lastErr)
}

// backoff returns the delay before the given attempt, with jitter to prevent thundering herd
func (r retrier) backoff(attempt int) time.Duration {
	baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * r.baseDelay
	jitter := time.Duration(0)
	if jitterMax := int64(float64(baseDelay) * 0.1); jitterMax > 0 {
		// Use crypto/rand for secure random jitter
		if jitterBig, err := rand.Int(rand.Reader, big.NewInt(jitterMax)); err == nil {
			jitter = time.Duration(jitterBig.Int64())
		}
	}
	// Cap maximum backoff at 30 seconds
	return min(baseDelay+jitter, maxRetryBackoff)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	// Caller cancellation is final
	if errors.Is(err, context.Canceled) {
		return false
	}

	// Network errors (timeouts, connection issues) are retryable
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Google API errors (HTTP status codes)
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return isRetryableStatus(apiErr.Code)
	}

	// Gemini returns its API errors by value
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return isRetryableStatus(genaiErr.Code)
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return isRetryableStatus(anthropicErr.StatusCode)
	}

	return false
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
