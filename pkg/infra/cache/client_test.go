package cache_test

import (
	"context"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infracache "github.com/harvesthub/harvesthub/pkg/infra/cache"
)

func newQuietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// deadlineDialer records whether the command context reaching the dialer
// carries a deadline, then refuses the connection so commands fail fast.
func deadlineDialer(saw *atomic.Bool) func(context.Context, string, string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		if _, ok := ctx.Deadline(); ok {
			saw.Store(true)
		}
		return nil, errors.New("dial refused")
	}
}

func newDialerClient(t *testing.T, saw *atomic.Bool) infracache.Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Dialer:     deadlineDialer(saw),
		MaxRetries: -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return infracache.NewClientFromRedis(rdb, newQuietLogger())
}

func TestClientGet_BoundsCommandWithDeadline(t *testing.T) {
	var saw atomic.Bool
	c := newDialerClient(t, &saw)

	_, _, err := c.Get(context.Background(), "products:1")

	require.Error(t, err)
	assert.True(t, saw.Load(), "Get must derive a deadline even from a background context")
}

func TestClientSet_BoundsCommandWithDeadline(t *testing.T) {
	var saw atomic.Bool
	c := newDialerClient(t, &saw)

	err := c.Set(context.Background(), "products:1", "{}", 0)

	require.Error(t, err)
	assert.True(t, saw.Load())
}

func TestClientDelete_BoundsCommandWithDeadline(t *testing.T) {
	var saw atomic.Bool
	c := newDialerClient(t, &saw)

	err := c.Delete(context.Background(), "products:1")

	require.Error(t, err)
	assert.True(t, saw.Load())
}
