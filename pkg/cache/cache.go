package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
	"golang.org/x/sync/singleflight"

	infracache "github.com/harvesthub/harvesthub/pkg/infra/cache"
)

// Options controls per-call TTLs for the two tiers.
type Options struct {
	LocalTTL  time.Duration
	RemoteTTL time.Duration
}

// Health is the result of a distributed-tier probe.
type Health struct {
	Healthy   bool    `json:"healthy"`
	LatencyMs float64 `json:"latency_ms"`
	State     string  `json:"state"`
	Error     string  `json:"error,omitempty"`
}

// TieredCache layers an in-process TTL map over a distributed store.
// The local tier is a best-effort accelerator; the distributed tier is
// shared across processes but allowed to fail. A failure at either tier
// never surfaces to the caller of Get: lookups degrade to the fetch
// function, writes degrade to local-only.
type TieredCache struct {
	logger *logrus.Logger
	local  *infracache.TTLMap
	remote infracache.Client
	group  singleflight.Group
}

func NewTieredCache(logger *logrus.Logger, local *infracache.TTLMap, remote infracache.Client) *TieredCache {
	return &TieredCache{
		logger: logger,
		local:  local,
		remote: remote,
	}
}

// Fetch resolves a key through local tier, distributed tier, then the fetch
// function, in that order. A distributed hit backfills the local tier. A
// fetched value is written to the local tier synchronously and to the
// distributed tier fire-and-forget. Concurrent fetches for one key are
// collapsed.
func Fetch[T any](ctx context.Context, c *TieredCache, key string, opts Options, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := c.local.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
		// type changed under the same key, drop the stale entry
		c.local.Delete(key)
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		raw, found, rerr := c.remote.Get(ctx, key)
		if rerr != nil {
			c.logger.WithFields(logrus.Fields{
				"key":   key,
				"error": rerr.Error(),
			}).Warn("distributed cache read failed, treating as miss")
		} else if found {
			var typed T
			if fastjson.Validate(raw) != nil || json.Unmarshal([]byte(raw), &typed) != nil {
				c.dropCorrupted(ctx, key)
			} else {
				c.local.SetWithTTL(key, typed, opts.LocalTTL)
				return typed, nil
			}
		}

		value, ferr := fetch(ctx)
		if ferr != nil {
			return nil, ferr
		}
		c.local.SetWithTTL(key, value, opts.LocalTTL)
		c.writeRemoteAsync(key, value, opts.RemoteTTL)
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, nil
	}
	return typed, nil
}

// Set writes to both tiers: the local tier synchronously, the distributed
// tier fire-and-forget. Callers never wait on, or observe, the distributed
// write.
func (c *TieredCache) Set(key string, value interface{}, opts Options) {
	c.local.SetWithTTL(key, value, opts.LocalTTL)
	c.writeRemoteAsync(key, value, opts.RemoteTTL)
}

// Peek reads through local then distributed tier without a fetch fallback.
// The raw stored payload is returned; a missing key or an unavailable
// distributed tier both report found=false. Used by the rate limiter, which
// owns its own records.
func (c *TieredCache) Peek(ctx context.Context, key string) (string, bool) {
	if v, ok := c.local.Get(key); ok {
		if raw, ok := v.(string); ok {
			return raw, true
		}
	}
	raw, found, err := c.remote.Get(ctx, key)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("distributed cache read failed, treating as miss")
		return "", false
	}
	return raw, found
}

// SetRaw stores a pre-encoded payload in both tiers. The distributed write
// is synchronous here because rate-limit counters lose meaning if the write
// is reordered; its failure is still swallowed.
func (c *TieredCache) SetRaw(ctx context.Context, key string, raw string, opts Options) {
	c.local.SetWithTTL(key, raw, opts.LocalTTL)
	if err := c.remote.Set(ctx, key, raw, opts.RemoteTTL); err != nil {
		c.logger.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("distributed cache write failed, key is local-only")
	}
}

// Delete removes the key from both tiers.
func (c *TieredCache) Delete(ctx context.Context, key string) {
	c.local.Delete(key)
	if err := c.remote.Delete(ctx, key); err != nil {
		c.logger.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("distributed cache delete failed")
	}
}

// Invalidate clears the entire local tier (no local pattern matching) and
// deletes all distributed keys matching the glob pattern.
func (c *TieredCache) Invalidate(ctx context.Context, pattern string) {
	c.local.Clear()
	deleted, err := c.remote.DeleteByPattern(ctx, pattern)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"pattern": pattern,
			"error":   err.Error(),
		}).Warn("distributed cache invalidation incomplete")
		return
	}
	c.logger.WithFields(logrus.Fields{
		"pattern": pattern,
		"deleted": deleted,
	}).Debug("cache invalidated")
}

// Health probes the distributed tier. Never used on the request hot path.
func (c *TieredCache) Health(ctx context.Context) Health {
	latency, err := c.remote.Ping(ctx)
	h := Health{
		Healthy:   err == nil,
		LatencyMs: float64(latency.Microseconds()) / 1000.0,
		State:     c.remote.State().String(),
	}
	if err != nil {
		h.Error = err.Error()
	}
	return h
}

// LocalKeys exposes the live local-tier keys, for diagnostics.
func (c *TieredCache) LocalKeys() []string {
	return c.local.Keys()
}

func (c *TieredCache) dropCorrupted(ctx context.Context, key string) {
	c.logger.WithField("key", key).Warn("corrupted cache entry, deleting and refetching")
	if err := c.remote.Delete(ctx, key); err != nil {
		c.logger.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("failed to delete corrupted cache entry")
	}
}

func (c *TieredCache) writeRemoteAsync(key string, value interface{}, ttl time.Duration) {
	encoded, err := json.Marshal(value)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Warn("failed to encode value for distributed cache")
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.remote.Set(ctx, key, string(encoded), ttl); err != nil {
			c.logger.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("distributed cache write failed, key is local-only")
		}
	}()
}
