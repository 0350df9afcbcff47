package cache

import (
	"context"
	"time"

	"github.com/GreaLake/checkIn/storage/redis"
)

// 基于 Redis SetNX 的分布式锁，封堵同一用户并发重复签到与并发审批

const (
	lockPrefix = "lock"

	// 获取锁失败时的重试间隔与上限，超过即放弃
	lockRetryInterval = 50 * time.Millisecond
	lockMaxWait       = 2 * time.Second
)

// Locker 分布式锁契约，服务层通过它串行化同键操作
type Locker interface {
	// TryLock 获取成功返回 true，锁已被占用返回 false
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Lock 带重试地获取锁，超过 lockMaxWait 仍未获取则返回 false
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type redisLocker struct{}

// NewRedisLocker 基于全局 Redis 客户端的 Locker 实现
func NewRedisLocker() Locker {
	return &redisLocker{}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullKey := redis.Key(lockPrefix, key)

	return redis.Client().SetNX(ctx, fullKey, 1, ttl).Result()
}

func (l *redisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	deadline := time.Now().Add(lockMaxWait)
	for {
		ok, err := l.TryLock(ctx, key, ttl)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

func (l *redisLocker) Unlock(ctx context.Context, key string) error {
	fullKey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullKey).Err()
}
