package rate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const suggestWindow = time.Minute

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

// Limiter throttles location suggestion lookups per caller so bursty typing
// cannot exhaust the external geocoder quota. Fixed one-minute window.
type Limiter struct {
	store     WindowStore
	perMinute int
}

func NewLimiter(store WindowStore, perMinute int) *Limiter {
	if perMinute < 0 {
		perMinute = 0
	}

	return &Limiter{
		store:     store,
		perMinute: perMinute,
	}
}

// AllowSuggest records one suggestion lookup for the caller and reports
// whether it may proceed. When blocked, retryAfterSec tells the caller how
// long to back off. A zero per-minute budget disables limiting.
func (l *Limiter) AllowSuggest(ctx context.Context, callerKey string) (int64, bool, error) {
	if strings.TrimSpace(callerKey) == "" {
		return 0, false, fmt.Errorf("invalid caller key")
	}
	if l.perMinute == 0 {
		return 0, true, nil
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, suggestKey(callerKey), suggestWindow)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.perMinute) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

// RetryAfterSuggest reads the caller's backoff without consuming budget.
func (l *Limiter) RetryAfterSuggest(ctx context.Context, callerKey string) (int64, error) {
	if strings.TrimSpace(callerKey) == "" {
		return 0, fmt.Errorf("invalid caller key")
	}
	if l.perMinute == 0 {
		return 0, nil
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.WindowState(ctx, suggestKey(callerKey))
	if err != nil {
		return 0, err
	}
	if count >= int64(l.perMinute) {
		return ceilSeconds(ttl), nil
	}

	return 0, nil
}

func suggestKey(callerKey string) string {
	return "rate:suggest:min:" + callerKey
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
