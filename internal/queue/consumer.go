package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/GreaLake/checkIn/internal/cache"
	"github.com/GreaLake/checkIn/internal/model"
	"github.com/GreaLake/checkIn/pkg/logger"
)

// 审批流事件的消费入口。通知网关的推送在这里收口，
// 重投递的消息靠 Redis 幂等标记去重

// HandleEventMessage 按消息体区分事件类型并分发
func HandleEventMessage(body []byte) error {
	ctx := context.Background()

	var head struct {
		MessageID string `json:"message_id"`
		Decision  string `json:"decision"`
	}
	if err := json.Unmarshal(body, &head); err != nil || head.MessageID == "" {
		// 格式非法的消息重投也无法处理，记录后丢弃
		logger.Logger.Warn("Dropping malformed event message",
			zap.ByteString("body", body),
			zap.Error(err),
		)
		return nil
	}

	fresh, err := cache.TryMarkMessageProcessing(ctx, head.MessageID)
	if err != nil {
		return fmt.Errorf("failed to mark message processing: %w", err)
	}
	if !fresh {
		logger.Logger.Debug("Skipping duplicate message", zap.String("message_id", head.MessageID))
		return nil
	}

	var handleErr error
	if head.Decision != "" {
		handleErr = handleApprovalDecision(body)
	} else {
		handleErr = handleCheckInSubmitted(body)
	}
	if handleErr != nil {
		if unmarkErr := cache.UnmarkMessage(ctx, head.MessageID); unmarkErr != nil {
			logger.Logger.Warn("Failed to unmark message", zap.String("message_id", head.MessageID), zap.Error(unmarkErr))
		}
		return handleErr
	}

	return cache.MarkMessageProcessed(ctx, head.MessageID)
}

func handleCheckInSubmitted(body []byte) error {
	var msg model.CheckInSubmittedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal checkin submitted message: %w", err)
	}

	// 推送待审批提醒给审批人
	logger.Logger.Info("Dispatching pending approval notification",
		zap.String("message_id", msg.MessageID),
		zap.Int64("record_id", msg.RecordID),
		zap.String("user_name", msg.UserName),
		zap.String("type_label", model.FullTypeLabel(msg.Type, msg.SubType)),
		zap.String("check_in_time", msg.CheckInTime),
	)
	return nil
}

func handleApprovalDecision(body []byte) error {
	var msg model.ApprovalDecisionMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal approval decision message: %w", err)
	}

	// 推送审批结果给打卡人
	logger.Logger.Info("Dispatching approval decision notification",
		zap.String("message_id", msg.MessageID),
		zap.Int64("record_id", msg.RecordID),
		zap.Int64("user_id", msg.UserID),
		zap.String("decision", msg.Decision),
		zap.String("decided_by", msg.DecidedBy),
		zap.String("reason", msg.Reason),
	)
	return nil
}
