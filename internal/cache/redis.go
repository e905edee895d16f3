package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/aerodrome/config"
	"github.com/Domenick1991/aerodrome/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client    *redis.Client
	infrasTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, infrasTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:    redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		infrasTTL: infrasTTL,
	}
}

func (c *RedisCache) GetInfrastructures(ctx context.Context) ([]domain.Infrastructure, error) {
	data, err := c.client.Get(ctx, infrasKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var infras []domain.Infrastructure
	if err := json.Unmarshal(data, &infras); err != nil {
		return nil, err
	}
	return infras, nil
}

func (c *RedisCache) SetInfrastructures(ctx context.Context, infras []domain.Infrastructure) error {
	payload, err := json.Marshal(infras)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, infrasKey(), payload, c.infrasTTL).Err()
}

// AcquireBookingLock serializes the read-validate-insert section per
// infrastructure across instances. The TTL bounds lock leakage if a holder
// dies before releasing.
func (c *RedisCache) AcquireBookingLock(ctx context.Context, infrastructureID int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, bookingLockKey(infrastructureID), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseBookingLock(ctx context.Context, infrastructureID int64) error {
	return c.client.Del(ctx, bookingLockKey(infrastructureID)).Err()
}

func infrasKey() string {
	return "cache:infrastructures"
}

func bookingLockKey(infrastructureID int64) string {
	return fmt.Sprintf("lock:infrastructure:%d", infrastructureID)
}
