package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient 介面定義
type RedisClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

const tokenBucketScript = `
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local ttl = tonumber(ARGV[4])

	-- 取得或初始化 bucket 狀態
	local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
	local currentTokens = tonumber(bucket[1])
	local lastRefill = tonumber(bucket[2])

	if currentTokens == nil then
		currentTokens = capacity
		lastRefill = now
	end

	-- 計算需要補充的 tokens
	local elapsedSeconds = (now - lastRefill) / 1000000000
	currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)

	local allowed = 0
	if currentTokens >= 1 then
		currentTokens = currentTokens - 1
		allowed = 1
	end

	redis.call('HSET', key, 'tokens', currentTokens, 'last_refill', now)
	redis.call('EXPIRE', key, ttl)
	return allowed
`

// RsBucketToken 多個 instance 共用 redis 上的 bucket
type RsBucketToken struct {
	LimiterConfig
	client RedisClient
}

func NewRsBucketToken(client RedisClient, config *LimiterConfig) *RsBucketToken {
	rb := &RsBucketToken{
		client:        client,
		LimiterConfig: GetDefaultLimiterConfig(),
	}
	if config != nil {
		rb.LimiterConfig = config.withDefaults()
	}
	return rb
}

func (r *RsBucketToken) Allow(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Eval(
		ctx,
		tokenBucketScript,
		[]string{fmt.Sprintf("%s:%s", r.Prefix, key)},
		r.Capacity,
		r.RatePS,
		time.Now().UnixNano(),
		int(r.TTL.Seconds()),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("redis token bucket: %w", err)
	}
	return result == 1, nil
}

var (
	_ Limiter = (*TokenBucket)(nil)
	_ Limiter = (*RsBucketToken)(nil)
)
