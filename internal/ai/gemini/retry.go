package gemini

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// maxQuotaDelay is the longest server-requested delay worth waiting for.
const maxQuotaDelay = 30 * time.Second

var (
	retryAfterPattern = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)

	newBackOff = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 500 * time.Millisecond
		b.MaxInterval = 10 * time.Second
		b.MaxElapsedTime = 2 * time.Minute
		return b
	}
)

// retry runs op up to attempts times while it fails with a transient error.
func retry(ctx context.Context, attempts int, log *zap.Logger, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(newBackOff(), uint64(attempts-1)), ctx)

	return backoff.RetryNotify(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		log.Warn("gemini request failed, retrying", zap.Error(err), zap.Duration("wait", wait))
	})
}

func apiError(err error) (genai.APIError, bool) {
	var value genai.APIError
	if errors.As(err, &value) {
		return value, true
	}
	var ptr *genai.APIError
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	return genai.APIError{}, false
}

// isTransient reports whether the request may succeed when repeated. Quota
// errors asking for a long pause are treated as final.
func isTransient(err error) bool {
	apiErr, ok := apiError(err)
	if !ok {
		return false
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		delay, found := retryDelay(apiErr.Message)
		return !found || delay <= maxQuotaDelay
	case apiErr.Code >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

func retryDelay(message string) (time.Duration, bool) {
	match := retryAfterPattern.FindStringSubmatch(message)
	if match == nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}
