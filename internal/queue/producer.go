package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GreaLake/checkIn/internal/model"
	"github.com/GreaLake/checkIn/pkg/logger"
	"github.com/GreaLake/checkIn/pkg/snowflake"
	"github.com/GreaLake/checkIn/storage/mq"
)

// 审批流事件的发布入口，路由键按 attendance.<动作> 约定

const (
	RoutingKeyCheckInSubmitted = "attendance.checkin.submitted"
	RoutingKeyApprovalApproved = "attendance.approval.approved"
	RoutingKeyApprovalRejected = "attendance.approval.rejected"
)

func nextMessageID() string {
	id, err := snowflake.NextID()
	if err != nil {
		// 退化为时间戳，仅影响幂等去重粒度
		return fmt.Sprintf("ts-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d", id)
}

// PublishCheckInSubmitted 新签到入队，通知审批人有待审批记录
func PublishCheckInSubmitted(record *model.CheckInRecord) error {
	msg := model.CheckInSubmittedMessage{
		MessageID:   nextMessageID(),
		RecordID:    record.ID,
		UserID:      record.UserID,
		UserName:    record.UserName,
		Type:        record.Type,
		SubType:     record.SubType,
		CheckInTime: record.CheckInTime.Format("2006-01-02 15:04:05"),
		OccurredAt:  time.Now().Format(time.RFC3339),
	}

	if err := mq.PublishMessage(mq.EventExchange, RoutingKeyCheckInSubmitted, msg); err != nil {
		return fmt.Errorf("failed to publish checkin submitted event: %w", err)
	}

	logger.Logger.Info("Check-in submitted event published",
		zap.Int64("record_id", record.ID),
		zap.String("type", record.Type),
	)
	return nil
}

// PublishApprovalDecision 审批结果入队，decision 取 approved 或 rejected
func PublishApprovalDecision(record *model.CheckInRecord, decision, decidedBy, reason string) error {
	routingKey := RoutingKeyApprovalApproved
	if decision == "rejected" {
		routingKey = RoutingKeyApprovalRejected
	}

	msg := model.ApprovalDecisionMessage{
		MessageID: nextMessageID(),
		RecordID:  record.ID,
		UserID:    record.UserID,
		Decision:  decision,
		DecidedBy: decidedBy,
		Reason:    reason,
		DecidedAt: time.Now().Format(time.RFC3339),
	}

	if err := mq.PublishMessage(mq.EventExchange, routingKey, msg); err != nil {
		return fmt.Errorf("failed to publish approval decision event: %w", err)
	}

	logger.Logger.Info("Approval decision event published",
		zap.Int64("record_id", record.ID),
		zap.String("decision", decision),
	)
	return nil
}
