package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/cache"
)

// record is the stored counter for one (policy, identity) pair within the
// current window.
type record struct {
	Count         int       `json:"count"`
	WindowResetAt time.Time `json:"window_reset_at"`
}

// Result is the outcome of a single admission check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter counts requests in fixed windows, keyed by (policy, identity),
// with counters stored in the tiered cache. Counter races across concurrent
// requests are accepted: the window may admit slightly more than the limit
// under contention.
type Limiter struct {
	logger *logrus.Logger
	cache  *cache.TieredCache
	now    func() time.Time
}

func NewLimiter(logger *logrus.Logger, c *cache.TieredCache) *Limiter {
	return &Limiter{
		logger: logger,
		cache:  c,
		now:    time.Now,
	}
}

// NewLimiterWithClock is used by tests to control window boundaries.
func NewLimiterWithClock(logger *logrus.Logger, c *cache.TieredCache, now func() time.Time) *Limiter {
	l := NewLimiter(logger, c)
	l.now = now
	return l
}

// Check increments the counter for the identity under the policy and
// reports whether the request is admitted. Any cache failure fails open:
// rate limiting must never take the service down with it.
func (l *Limiter) Check(ctx context.Context, identity string, policy Policy) Result {
	now := l.now()
	key := fmt.Sprintf("ratelimit:%s:%s", policy.Name, identity)

	rec := record{Count: 0, WindowResetAt: now.Add(policy.Window)}
	if raw, found := l.cache.Peek(ctx, key); found {
		var stored record
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			l.logger.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("unreadable rate limit record, starting fresh window")
		} else if now.Before(stored.WindowResetAt) {
			rec = stored
		}
	}

	rec.Count++
	encoded, err := json.Marshal(rec)
	if err != nil {
		l.logger.WithError(err).WithField("key", key).Error("failed to encode rate limit record, failing open")
		return l.failOpen(policy, now)
	}
	ttl := rec.WindowResetAt.Sub(now)
	l.cache.SetRaw(ctx, key, string(encoded), cache.Options{LocalTTL: ttl, RemoteTTL: ttl})

	remaining := policy.Limit - rec.Count
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:   rec.Count <= policy.Limit,
		Limit:     policy.Limit,
		Remaining: remaining,
		ResetAt:   rec.WindowResetAt,
	}
	if !res.Allowed {
		res.RetryAfter = rec.WindowResetAt.Sub(now)
	}
	return res
}

func (l *Limiter) failOpen(policy Policy, now time.Time) Result {
	return Result{
		Allowed:   true,
		Limit:     policy.Limit,
		Remaining: policy.Limit,
		ResetAt:   now.Add(policy.Window),
	}
}
