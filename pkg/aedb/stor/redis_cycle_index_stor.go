package stor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisCycleIndexStor keeps token cycle indexes in redis under
// alterego:token:<id>:current_index. A missing key reads as 0.
type RedisCycleIndexStor struct {
	client *redis.Client
}

func NewRedisCycleIndexStor(client *redis.Client) *RedisCycleIndexStor {
	return &RedisCycleIndexStor{client: client}
}

// ConnectRedis builds a client and verifies it with a PING.
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s failed: %w", addr, err)
	}

	return client, nil
}

func cycleIndexKey(tokenID int) string {
	return "alterego:token:" + strconv.Itoa(tokenID) + ":current_index"
}

func (s *RedisCycleIndexStor) GetCurrentIndex(tokenID int) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	index, err := s.client.Get(ctx, cycleIndexKey(tokenID)).Int()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, nil
	case err != nil:
		return 0, err
	default:
		return index, nil
	}
}

func (s *RedisCycleIndexStor) SetCurrentIndex(tokenID, index int) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	return s.client.Set(ctx, cycleIndexKey(tokenID), index, 0).Err()
}
