package factory

import (
	"testing"
	"time"

	"github.com/akeren/friendlyfonts/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

type clientProvider struct{ client *redis.Client }

func (p clientProvider) GetClient() *redis.Client { return p.client }

func TestCreateRateLimiter_InMemoryWithoutRedis(t *testing.T) {
	f := NewDefaultRateLimiterFactory(nil, nil)

	limiter := f.CreateRateLimiter(30, time.Minute)

	assert.IsType(t, &ratelimit.InMemoryRateLimiter{}, limiter)
	requests, window := limiter.GetLimitDetails()
	assert.Equal(t, 30, requests)
	assert.Equal(t, time.Minute, window)
}

func TestCreateRateLimiter_RedisWhenClientPresent(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	f := NewDefaultRateLimiterFactory(clientProvider{client: client}, nil)

	assert.IsType(t, &ratelimit.RedisRateLimiter{}, f.CreateRateLimiter(5, time.Second))
}
