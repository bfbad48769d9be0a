// Package redisdedup implements reminder deduplication on top of Redis.
package redisdedup

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const reminderKeyPrefix = "cancel-review-reminder:"

// RedisReminderDeduplicator records which orders have already triggered a
// cancel-review reminder. The SETNX result tells the caller whether this run
// owns the reminder; the key expires after the deduplication window so stale
// requests eventually nag again.
type RedisReminderDeduplicator struct {
	client *redis.Client
	window time.Duration
}

// NewRedisReminderDeduplicator creates a deduplicator with the given window.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	dedup := NewRedisReminderDeduplicator(client, 24*time.Hour)
func NewRedisReminderDeduplicator(client *redis.Client, window time.Duration) *RedisReminderDeduplicator {
	return &RedisReminderDeduplicator{
		client: client,
		window: window,
	}
}

// MarkReminded returns true exactly once per order within the window.
func (d *RedisReminderDeduplicator) MarkReminded(ctx context.Context, orderID kernel.UUID) (bool, error) {
	if err := orderID.Validate(); err != nil {
		return false, err
	}

	key := reminderKeyPrefix + orderID.String()
	return d.client.SetNX(ctx, key, 1, d.window).Result()
}
