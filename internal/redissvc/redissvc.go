package redissvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const catalogKeyPrefix = "catalog:response:"

// RedisService caches raw catalog responses so repeated runs within the TTL
// skip the network call.
type RedisService struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisService(rdb redis.Cmdable, ttl time.Duration) *RedisService {
	return &RedisService{
		rdb: rdb,
		ttl: ttl,
	}
}

// Connect creates a client for addr and checks it with PING.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

func CatalogKey(url string) string {
	return catalogKeyPrefix + url
}

// Get returns the cached body for url. A miss is reported as ok == false.
func (s *RedisService) Get(ctx context.Context, url string) ([]byte, bool, error) {
	body, err := s.rdb.Get(ctx, CatalogKey(url)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (s *RedisService) Set(ctx context.Context, url string, body []byte) error {
	return s.rdb.Set(ctx, CatalogKey(url), body, s.ttl).Err()
}

// TTL is the lifetime given to every cached body.
func (s *RedisService) TTL() time.Duration {
	return s.ttl
}
