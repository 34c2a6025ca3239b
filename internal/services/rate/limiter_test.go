package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/jobast/bokkal/internal/repo/redis"
)

func TestLimiterBlocksAfterBudget(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 3)

	ctx := context.Background()
	caller := "203.0.113.9"

	for i := 0; i < 3; i++ {
		retryAfter, allowed, err := limiter.AllowSuggest(ctx, caller)
		if err != nil {
			t.Fatalf("allow suggest #%d: %v", i+1, err)
		}
		if !allowed || retryAfter != 0 {
			t.Fatalf("unexpected result on allow #%d: allowed=%v retry_after=%d", i+1, allowed, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.AllowSuggest(ctx, caller)
	if err != nil {
		t.Fatalf("allow suggest #4: %v", err)
	}
	if allowed {
		t.Fatalf("expected block on fourth lookup in the window")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry_after, got %d", retryAfter)
	}

	currentRetry, err := limiter.RetryAfterSuggest(ctx, caller)
	if err != nil {
		t.Fatalf("retry_after state: %v", err)
	}
	if currentRetry <= 0 {
		t.Fatalf("expected positive retry_after state, got %d", currentRetry)
	}

	mr.FastForward(61 * time.Second)

	retryAfter, allowed, err = limiter.AllowSuggest(ctx, caller)
	if err != nil {
		t.Fatalf("allow suggest after window: %v", err)
	}
	if !allowed || retryAfter != 0 {
		t.Fatalf("unexpected result after fast forward: allowed=%v retry_after=%d", allowed, retryAfter)
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	mr, client := newMiniRedisClient(t)
	defer mr.Close()
	defer func() { _ = client.Close() }()

	repo := redrepo.NewRateRepo(client)
	limiter := NewLimiter(repo, 1)

	ctx := context.Background()

	if _, allowed, err := limiter.AllowSuggest(ctx, "caller-a"); err != nil || !allowed {
		t.Fatalf("caller-a first lookup: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowSuggest(ctx, "caller-a"); err != nil || allowed {
		t.Fatalf("caller-a second lookup should block: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowSuggest(ctx, "caller-b"); err != nil || !allowed {
		t.Fatalf("caller-b must have its own budget: allowed=%v err=%v", allowed, err)
	}
}

func TestLimiterZeroBudgetDisablesLimiting(t *testing.T) {
	limiter := NewLimiter(nil, 0)

	for i := 0; i < 5; i++ {
		if _, allowed, err := limiter.AllowSuggest(context.Background(), "anyone"); err != nil || !allowed {
			t.Fatalf("zero budget must allow everything: allowed=%v err=%v", allowed, err)
		}
	}
}

func newMiniRedisClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	return mr, client
}
