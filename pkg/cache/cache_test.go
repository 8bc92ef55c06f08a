package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvesthub/harvesthub/pkg/cache"
	infracache "github.com/harvesthub/harvesthub/pkg/infra/cache"
)

type product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*cache.TieredCache, *infracache.TTLMap, redismock.ClientMock) {
	t.Helper()
	rdb, mock := redismock.NewClientMock()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	local := infracache.NewTTLMap(time.Minute)
	remote := infracache.NewClientFromRedis(rdb, logger)
	return cache.NewTieredCache(logger, local, remote), local, mock
}

func defaultOpts() cache.Options {
	return cache.Options{LocalTTL: time.Minute, RemoteTTL: 5 * time.Minute}
}

func TestFetch_LocalHitSkipsFetchAndRemote(t *testing.T) {
	c, local, _ := newTestCache(t)
	want := product{ID: "p1", Name: "heirloom tomatoes"}
	local.SetWithTTL("product:p1", want, time.Minute)

	fetched := false
	got, err := cache.Fetch(context.Background(), c, "product:p1", defaultOpts(), func(context.Context) (product, error) {
		fetched = true
		return product{}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, fetched, "fetch must not run on a local hit")
}

func TestFetch_RemoteHitBackfillsLocal(t *testing.T) {
	c, local, mock := newTestCache(t)
	mock.ExpectGet("product:p2").SetVal(`{"id":"p2","name":"raw honey"}`)

	got, err := cache.Fetch(context.Background(), c, "product:p2", defaultOpts(), func(context.Context) (product, error) {
		t.Fatal("fetch must not run on a remote hit")
		return product{}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "raw honey", got.Name)

	// backfilled: a second lookup resolves locally with no redis traffic
	_, ok := local.Get("product:p2")
	assert.True(t, ok)
}

func TestFetch_RemoteUnavailableFallsThroughToFetch(t *testing.T) {
	c, _, mock := newTestCache(t)
	mock.ExpectGet("product:p3").SetErr(errors.New("connection refused"))

	got, err := cache.Fetch(context.Background(), c, "product:p3", defaultOpts(), func(context.Context) (product, error) {
		return product{ID: "p3", Name: "kale"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "kale", got.Name)
}

func TestFetch_CorruptedRemoteEntryIsDeletedThenRefetched(t *testing.T) {
	c, _, mock := newTestCache(t)
	mock.ExpectGet("product:p4").SetVal(`{"id": "p4", "name": `)
	mock.ExpectDel("product:p4").SetVal(1)

	calls := 0
	got, err := cache.Fetch(context.Background(), c, "product:p4", defaultOpts(), func(context.Context) (product, error) {
		calls++
		return product{ID: "p4", Name: "squash"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "squash", got.Name)
	assert.Equal(t, 1, calls)
}

func TestFetch_FetchErrorPropagates(t *testing.T) {
	c, _, mock := newTestCache(t)
	mock.ExpectGet("product:p5").RedisNil()

	wantErr := errors.New("db down")
	_, err := cache.Fetch(context.Background(), c, "product:p5", defaultOpts(), func(context.Context) (product, error) {
		return product{}, wantErr
	})

	assert.ErrorIs(t, err, wantErr)
}

func TestSetThenFetch_ReturnsValueWithoutFetch(t *testing.T) {
	c, _, _ := newTestCache(t)
	want := product{ID: "p6", Name: "sourdough"}
	c.Set("product:p6", want, defaultOpts())

	got, err := cache.Fetch(context.Background(), c, "product:p6", defaultOpts(), func(context.Context) (product, error) {
		t.Fatal("fetch must not run after Set")
		return product{}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSetRawAndPeek_DegradeToLocalWhenRemoteDown(t *testing.T) {
	c, _, mock := newTestCache(t)
	mock.ExpectSet("counter:1", "41", time.Minute).SetErr(errors.New("connection refused"))

	c.SetRaw(context.Background(), "counter:1", "41", cache.Options{LocalTTL: time.Minute, RemoteTTL: time.Minute})

	raw, found := c.Peek(context.Background(), "counter:1")
	assert.True(t, found)
	assert.Equal(t, "41", raw)
}

func TestPeek_MissesWhenRemoteUnavailable(t *testing.T) {
	c, _, mock := newTestCache(t)
	mock.ExpectGet("counter:2").SetErr(errors.New("connection refused"))

	_, found := c.Peek(context.Background(), "counter:2")
	assert.False(t, found)
}

func TestInvalidate_ClearsLocalTierAndMatchingRemoteKeys(t *testing.T) {
	c, local, mock := newTestCache(t)
	local.SetWithTTL("product:p7", product{ID: "p7"}, time.Minute)
	local.SetWithTTL("farmer:f1", "unrelated", time.Minute)

	mock.ExpectScan(0, "product:*", 100).SetVal([]string{"product:p7", "product:p8"}, 0)
	mock.ExpectDel("product:p7", "product:p8").SetVal(2)

	c.Invalidate(context.Background(), "product:*")

	// local tier is cleared coarsely, unrelated keys included
	assert.Equal(t, 0, local.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_RemovesFromBothTiers(t *testing.T) {
	c, local, mock := newTestCache(t)
	local.SetWithTTL("product:p9", product{ID: "p9"}, time.Minute)
	mock.ExpectDel("product:p9").SetVal(1)

	c.Delete(context.Background(), "product:p9")

	_, ok := local.Get("product:p9")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth_ReportsLatencyAndState(t *testing.T) {
	c, _, mock := newTestCache(t)
	mock.ExpectPing().SetVal("PONG")

	h := c.Health(context.Background())
	assert.True(t, h.Healthy)
	assert.Empty(t, h.Error)
}

func TestHealth_ReportsFailure(t *testing.T) {
	c, _, mock := newTestCache(t)
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	h := c.Health(context.Background())
	assert.False(t, h.Healthy)
	assert.Contains(t, h.Error, "connection refused")
}
