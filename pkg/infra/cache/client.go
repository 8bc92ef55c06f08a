package cache

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// ConnState tracks the distributed tier's connection lifecycle.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

const (
	reconnectCooldown    = 5 * time.Second
	maxReconnectAttempts = 10
	commandTimeout       = 2 * time.Second
)

// ErrUnavailable is returned when the distributed tier is down or the
// breaker is open. Callers treat it as a cache miss.
var ErrUnavailable = errors.New("distributed cache unavailable")

// Client is the distributed key-value tier consumed by the tiered cache.
//
//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
	Ping(ctx context.Context) (time.Duration, error)
	State() ConnState
	Reconnect()
	Close() error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TLS      bool
}

type client struct {
	logger      *logrus.Logger
	rdb         *redis.Client
	breaker     *gobreaker.CircuitBreaker
	state       atomic.Int32
	reconnectMu sync.Mutex
}

// NewClient connects to redis and starts tracking connection state. The
// initial probe runs in the background so startup never blocks on redis.
func NewClient(cfg Config, logger *logrus.Logger) Client {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		options.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402
		}
	}
	c, ok := NewClientFromRedis(redis.NewClient(options), logger).(*client)
	if !ok {
		return nil
	}
	c.state.Store(int32(StateConnecting))
	go c.probe()
	return c
}

// NewClientFromRedis wraps an existing redis connection without probing it.
// The connection is assumed live; state transitions start on the first
// command failure. Used by tests with redismock.
func NewClientFromRedis(rdb *redis.Client, logger *logrus.Logger) Client {
	c := &client{
		logger: logger,
		rdb:    rdb,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "redis",
		MaxRequests: 3,
		Timeout:     reconnectCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("redis breaker state changed")
		},
	})
	c.state.Store(int32(StateConnected))
	return c
}

func (c *client) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		c.logger.WithError(err).Warn("initial redis probe failed")
		c.noteFailure()
		return
	}
	c.state.Store(int32(StateConnected))
}

func (c *client) State() ConnState {
	return ConnState(c.state.Load())
}

// noteFailure flips the state to disconnected once and kicks off the
// reconnect loop. Concurrent failures only start one loop.
func (c *client) noteFailure() {
	prev := c.state.Swap(int32(StateDisconnected))
	if ConnState(prev) != StateDisconnected {
		go c.reconnectLoop()
	}
}

// reconnectLoop probes on a fixed cooldown, giving up after
// maxReconnectAttempts. After that, Reconnect must be called externally.
func (c *client) reconnectLoop() {
	c.reconnectMu.Lock()
	defer c.reconnectMu.Unlock()

	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		c.state.Store(int32(StateConnecting))
		time.Sleep(reconnectCooldown)

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		err := c.rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			c.state.Store(int32(StateConnected))
			c.logger.WithField("attempt", attempt).Info("redis connection restored")
			return
		}
		c.logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"max":     maxReconnectAttempts,
			"error":   err.Error(),
		}).Warn("redis reconnect attempt failed")
	}

	c.state.Store(int32(StateDisconnected))
	c.logger.Error("redis reconnect attempts exhausted, waiting for external trigger")
}

// Reconnect restarts the reconnect loop. Called by operators (or the health
// endpoint) once the automatic attempts have given up.
func (c *client) Reconnect() {
	go c.reconnectLoop()
}

func (c *client) execute(op func() (interface{}, error)) (interface{}, error) {
	res, err := c.breaker.Execute(op)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrUnavailable
		}
		c.noteFailure()
		return nil, err
	}
	return res, nil
}

func (c *client) Get(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	res, err := c.execute(func() (interface{}, error) {
		val, err := c.rdb.Get(ctx, key).Result()
		if err == redis.Nil {
			// a miss is not a failure
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return val, nil
	})
	if err != nil {
		return "", false, err
	}
	if res == nil {
		return "", false, nil
	}
	val, ok := res.(string)
	if !ok {
		return "", false, errors.New("unexpected redis value type")
	}
	return val, true, nil
}

func (c *client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	_, err := c.execute(func() (interface{}, error) {
		return nil, c.rdb.Set(ctx, key, value, ttl).Err()
	})
	return err
}

func (c *client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	_, err := c.execute(func() (interface{}, error) {
		return nil, c.rdb.Del(ctx, keys...).Err()
	})
	return err
}

// DeleteByPattern removes every key matching the glob pattern, scanning in
// batches to avoid blocking redis.
func (c *client) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	deleted := 0
	var cursor uint64
	for {
		// one timeout per scan batch, not across the whole walk
		batchCtx, cancel := context.WithTimeout(ctx, commandTimeout)
		res, err := c.execute(func() (interface{}, error) {
			keys, next, err := c.rdb.Scan(batchCtx, cursor, pattern, 100).Result()
			if err != nil {
				return nil, err
			}
			if len(keys) > 0 {
				if err := c.rdb.Del(batchCtx, keys...).Err(); err != nil {
					return nil, err
				}
			}
			return []interface{}{keys, next}, nil
		})
		cancel()
		if err != nil {
			return deleted, fmt.Errorf("error scanning keys: %w", err)
		}
		pair, ok := res.([]interface{})
		if !ok || len(pair) != 2 {
			return deleted, errors.New("unexpected scan result")
		}
		keys, _ := pair[0].([]string)
		deleted += len(keys)
		cursor, _ = pair[1].(uint64)
		if cursor == 0 {
			break
		}
	}
	return deleted, nil
}

// Ping is the health probe; it bypasses the breaker so that a health check
// can observe recovery even while the breaker is open.
func (c *client) Ping(ctx context.Context) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()
	start := time.Now()
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (c *client) Close() error {
	return c.rdb.Close()
}
