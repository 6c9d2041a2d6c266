package factory

import (
	"time"

	"github.com/akeren/friendlyfonts/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
)

type RedisClientProvider interface {
	GetClient() *redis.Client
}

type RateLimiterFactory interface {
	CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter
}

// DefaultRateLimiterFactory builds Redis-backed limiters when a client is
// available and in-memory limiters otherwise.
type DefaultRateLimiterFactory struct {
	redis  *redis.Client
	logger ratelimit.Logger
}

// NewDefaultRateLimiterFactory accepts a nil provider.
func NewDefaultRateLimiterFactory(provider RedisClientProvider, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	var client *redis.Client
	if provider != nil {
		client = provider.GetClient()
	}

	return &DefaultRateLimiterFactory{redis: client, logger: logger}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter(requests int, window time.Duration) ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: requests,
		Window:   window,
		Redis:    f.redis,
		Logger:   f.logger,
	})
}
