package storage

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GreaLake/checkIn/pkg/logger"
	"github.com/GreaLake/checkIn/storage/database"
	"github.com/GreaLake/checkIn/storage/mq"
	"github.com/GreaLake/checkIn/storage/redis"
)

// Close 优雅关闭所有存储连接
// 关闭顺序：MQ -> Redis -> Database，先停止收发消息，最后关数据库保证落盘
func Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Logger.Info("Closing storage connections...")

	if err := mq.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close message queue", zap.Error(err))
	}

	if err := redis.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close Redis connection", zap.Error(err))
	}

	if err := database.Close(ctx); err != nil {
		logger.Logger.Error("Failed to close database connection", zap.Error(err))
	}

	logger.Logger.Info("All storage connections closed")
}
