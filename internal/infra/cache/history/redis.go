package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "venue-bookings:history:"

// RedisClient часть клиента go-redis, нужная для списка истории
type RedisClient interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisStore хранит историю пользователя в списке Redis, новые записи в начале
type RedisStore struct {
	client     RedisClient
	maxEntries int
	ttl        time.Duration
}

// NewRedisStore создает хранилище; ttl <= 0 отключает истечение ключа
func NewRedisStore(client RedisClient, maxEntries int, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:     client,
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// Append добавляет запись и обрезает список до maxEntries
func (s *RedisStore) Append(ctx context.Context, userID int64, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: Append: %v", ErrEncodeEntry, err)
	}

	key := userKey(userID)
	if err := s.client.LPush(ctx, key, payload).Err(); err != nil {
		return fmt.Errorf("%w: Append - lpush %s: %v", ErrStore, key, err)
	}
	if err := s.client.LTrim(ctx, key, 0, int64(s.maxEntries-1)).Err(); err != nil {
		return fmt.Errorf("%w: Append - ltrim %s: %v", ErrStore, key, err)
	}
	if s.ttl > 0 {
		if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
			return fmt.Errorf("%w: Append - expire %s: %v", ErrStore, key, err)
		}
	}

	return nil
}

// List возвращает записи пользователя, новые первыми; битые записи пропускаются
func (s *RedisStore) List(ctx context.Context, userID int64) ([]Entry, error) {
	key := userKey(userID)
	raw, err := s.client.LRange(ctx, key, 0, int64(s.maxEntries-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: List - lrange %s: %v", ErrStore, key, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func userKey(userID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, userID)
}
