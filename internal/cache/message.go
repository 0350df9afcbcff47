package cache

import (
	"context"
	"time"

	"github.com/GreaLake/checkIn/storage/redis"
)

// 消费端幂等标记，重投递的消息靠 message_id 去重

const (
	messagePrefix = "msg"

	// 处理中标记的有效期，超时视为消费失败允许重试
	processingTTL = 5 * time.Minute
	// 已完成标记保留一天，覆盖 MQ 的重投递窗口
	processedTTL = 24 * time.Hour
)

// TryMarkMessageProcessing 尝试将消息标记为处理中，
// 已有标记（处理中或已完成）时返回 false
func TryMarkMessageProcessing(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key(messagePrefix, messageID)

	return redis.Client().SetNX(ctx, key, "processing", processingTTL).Result()
}

// MarkMessageProcessed 将消息标记为已完成并延长保留期
func MarkMessageProcessed(ctx context.Context, messageID string) error {
	key := redis.Key(messagePrefix, messageID)

	return redis.Client().Set(ctx, key, "done", processedTTL).Err()
}

// UnmarkMessage 处理失败时清除标记，让重投递的消息可以再次进入
func UnmarkMessage(ctx context.Context, messageID string) error {
	key := redis.Key(messagePrefix, messageID)

	return redis.Client().Del(ctx, key).Err()
}
