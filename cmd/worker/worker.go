package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GreaLake/checkIn/config"
	"github.com/GreaLake/checkIn/internal/queue"
	"github.com/GreaLake/checkIn/pkg/logger"
	"github.com/GreaLake/checkIn/storage"
	"github.com/GreaLake/checkIn/storage/mq"
)

// 审批通知 worker，消费签到提交与审批结果事件并推送通知

func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	consumerTag := fmt.Sprintf("attendance-worker-%s", uuid.NewString()[:8])

	logger.Logger.Info("Worker starting",
		zap.String("queue", config.Cfg.ApprovalQueueName),
		zap.String("consumer_tag", consumerTag),
	)

	// 消费循环，连接断开后退避重连
	for {
		err := mq.Consume(mq.ConsumeOptions{
			Queue:         config.Cfg.ApprovalQueueName,
			ConsumerTag:   consumerTag,
			PrefetchCount: 10,
			Handler:       queue.HandleEventMessage,
		})
		if err != nil {
			logger.Logger.Error("Consumer stopped", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			logger.Logger.Info("Worker shutting down gracefully")
			return
		case <-time.After(5 * time.Second):
		}
	}
}
