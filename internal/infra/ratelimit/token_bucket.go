package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// TokenBucket 單機版, 沒有 redis 時使用
type TokenBucket struct {
	LimiterConfig
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewTokenBucket(config *LimiterConfig) *TokenBucket {
	cfg := GetDefaultLimiterConfig()
	if config != nil {
		cfg = config.withDefaults()
	}
	return &TokenBucket{
		LimiterConfig: cfg,
		buckets:       make(map[string]*bucket),
		now:           time.Now,
	}
}

func (t *TokenBucket) Allow(ctx context.Context, key string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.evict(now)

	b, ok := t.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(t.Capacity), lastRefill: now}
		t.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = math.Min(float64(t.Capacity), b.tokens+elapsed*float64(t.RatePS))
	b.lastRefill = now

	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// 閒置超過 TTL 的 bucket 已經補滿, 可以直接移除
func (t *TokenBucket) evict(now time.Time) {
	for k, b := range t.buckets {
		if now.Sub(b.lastRefill) > t.TTL {
			delete(t.buckets, k)
		}
	}
}
