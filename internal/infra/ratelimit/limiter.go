package ratelimit

import (
	"context"
	"time"
)

type LimiterConfig struct {
	Prefix   string
	Capacity int
	RatePS   int // tokens/秒
	// key 閒置多久後過期
	TTL time.Duration
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Prefix:   "ratelimit",
		Capacity: 5,
		RatePS:   1,
		TTL:      time.Minute,
	}
}

func (l LimiterConfig) withDefaults() LimiterConfig {
	def := GetDefaultLimiterConfig()
	if l.Prefix == "" {
		l.Prefix = def.Prefix
	}
	if l.Capacity <= 0 {
		l.Capacity = def.Capacity
	}
	if l.RatePS <= 0 {
		l.RatePS = def.RatePS
	}
	if l.TTL <= 0 {
		l.TTL = def.TTL
	}
	return l
}

// Limiter 每個 key 各自一個 bucket
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
