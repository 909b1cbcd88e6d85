package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_Basic(t *testing.T) {
	bucket := NewTokenBucket(&LimiterConfig{Capacity: 5, RatePS: 2})
	now := time.Now()
	bucket.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		ok, err := bucket.Allow(context.Background(), "user:1")
		require.NoError(t, err)
		require.True(t, ok, "第 %d 次請求應該允許", i+1)
	}

	ok, _ := bucket.Allow(context.Background(), "user:1")
	require.False(t, ok, "超過容量限制應該被拒絕")

	// 不同 key 互不影響
	ok, _ = bucket.Allow(context.Background(), "user:2")
	require.True(t, ok)
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := NewTokenBucket(&LimiterConfig{Capacity: 2, RatePS: 1})
	now := time.Now()
	bucket.now = func() time.Time { return now }

	bucket.Allow(context.Background(), "k")
	bucket.Allow(context.Background(), "k")
	ok, _ := bucket.Allow(context.Background(), "k")
	require.False(t, ok)

	now = now.Add(1100 * time.Millisecond)
	ok, _ = bucket.Allow(context.Background(), "k")
	require.True(t, ok, "應該有1個新的token可用")
	ok, _ = bucket.Allow(context.Background(), "k")
	require.False(t, ok, "不應該有第2個token可用")
}

func TestTokenBucket_EvictIdleKeys(t *testing.T) {
	bucket := NewTokenBucket(&LimiterConfig{Capacity: 1, RatePS: 1, TTL: time.Second})
	now := time.Now()
	bucket.now = func() time.Time { return now }

	bucket.Allow(context.Background(), "a")
	require.Len(t, bucket.buckets, 1)

	now = now.Add(2 * time.Second)
	bucket.Allow(context.Background(), "b")
	require.Len(t, bucket.buckets, 1)
	_, ok := bucket.buckets["b"]
	require.True(t, ok)
}

type stubRedis struct {
	keys   []string
	args   []interface{}
	result int64
	err    error
}

func (s *stubRedis) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	s.keys = keys
	s.args = args
	return redis.NewCmdResult(s.result, s.err)
}

func TestRsBucketToken(t *testing.T) {
	client := &stubRedis{result: 1}
	limiter := NewRsBucketToken(client, &LimiterConfig{Prefix: "checkout", Capacity: 3, RatePS: 1, TTL: time.Minute})

	ok, err := limiter.Allow(context.Background(), "42")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"checkout:42"}, client.keys)
	require.Equal(t, 3, client.args[0])
	require.Equal(t, 60, client.args[3])

	client.result = 0
	ok, err = limiter.Allow(context.Background(), "42")
	require.NoError(t, err)
	require.False(t, ok)

	client.err = errors.New("connection refused")
	ok, err = limiter.Allow(context.Background(), "42")
	require.Error(t, err)
	require.False(t, ok)
}
