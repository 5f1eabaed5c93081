// Package interpreter implements interfaces.Interpreter against the Claude
// and Gemini APIs: one backend per provider, both resolving a prompt batch
// concurrently with shared rate-limit retry/backoff handling.
package interpreter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// RetryConfig governs backoff on a rate-limited provider call.
type RetryConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

const (
	defaultMaxRetries        = 5
	defaultInitialBackoff    = 45 * time.Second
	defaultMaxBackoff        = 90 * time.Second
	defaultBackoffMultiplier = 1.5

	// defaultRequestsPerSecond throttles outbound provider calls so a large
	// prompt batch fanned out concurrently doesn't trip the quota window the
	// backoff above exists to recover from.
	defaultRequestsPerSecond = 2
)

// newRequestLimiter builds the per-backend request throttle; zero or
// negative requestsPerSecond selects the default.
func newRequestLimiter(requestsPerSecond int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRequestsPerSecond
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
}

// NewDefaultRetryConfig returns the defaults tuned for a ~60s provider quota
// window.
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        defaultMaxRetries,
		InitialBackoff:    defaultInitialBackoff,
		MaxBackoff:        defaultMaxBackoff,
		BackoffMultiplier: defaultBackoffMultiplier,
	}
}

// IsRateLimitError reports whether err looks like a 429/quota-exhausted
// response from either provider.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "RESOURCE_EXHAUSTED") ||
		strings.Contains(errStr, "quota")
}

var retryDelayRegex = regexp.MustCompile(`(?i)(?:Please retry in |retryDelay[:\s]+)(\d+(?:\.\d+)?)\s*s`)

// ExtractRetryDelay parses an API-suggested retry delay out of err's
// message, returning 0 when none is present.
func ExtractRetryDelay(err error) time.Duration {
	if err == nil {
		return 0
	}
	matches := retryDelayRegex.FindStringSubmatch(err.Error())
	if len(matches) < 2 {
		return 0
	}
	seconds, parseErr := strconv.ParseFloat(matches[1], 64)
	if parseErr != nil {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// CalculateBackoff computes the wait before the next attempt: apiDelay (when
// positive) seeds the base instead of InitialBackoff, scaled by
// BackoffMultiplier^attempt and capped at MaxBackoff.
func (c RetryConfig) CalculateBackoff(attempt int, apiDelay time.Duration) time.Duration {
	base := c.InitialBackoff
	if apiDelay > 0 {
		base = apiDelay + 5*time.Second
	}

	multiplier := 1.0
	for i := 0; i < attempt; i++ {
		multiplier *= c.BackoffMultiplier
	}

	backoff := time.Duration(float64(base) * multiplier)
	if backoff > c.MaxBackoff {
		backoff = c.MaxBackoff
	}
	return backoff
}
