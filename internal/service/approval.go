package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GreaLake/checkIn/internal/cache"
	"github.com/GreaLake/checkIn/internal/model"
	"github.com/GreaLake/checkIn/internal/model/dto"
	"github.com/GreaLake/checkIn/internal/queue"
	"github.com/GreaLake/checkIn/internal/repository"
	"github.com/GreaLake/checkIn/pkg/errors"
	"github.com/GreaLake/checkIn/pkg/logger"
	"github.com/GreaLake/checkIn/storage/database"
)

var (
	approvalService *ApprovalService
	approvalOnce    sync.Once
)

// ApprovalService 审批服务。approved 与 rejected 互斥，
// 通过后不可再变更，驳回可重复执行并刷新驳回信息
type ApprovalService struct {
	records repository.RecordStore
	locker  cache.Locker
	now     func() time.Time
}

func NewApprovalService(records repository.RecordStore, locker cache.Locker) *ApprovalService {
	return &ApprovalService{
		records: records,
		locker:  locker,
		now:     time.Now,
	}
}

func GetApprovalService() *ApprovalService {
	approvalOnce.Do(func() {
		approvalService = NewApprovalService(
			repository.NewRecordStore(database.DB()),
			cache.NewRedisLocker(),
		)
	})
	return approvalService
}

func recordLockKey(recordID int64) string {
	return fmt.Sprintf("record:%d", recordID)
}

// Approve 审批通过，审批人可顺带修订工作内容
func (s *ApprovalService) Approve(ctx context.Context, recordID int64, approver string, req *dto.ApproveRequest) (*model.CheckInRecord, error) {
	lockKey := recordLockKey(recordID)
	acquired, err := s.locker.Lock(ctx, lockKey, sessionLockTTL)
	if err != nil {
		logger.Logger.Error("Failed to acquire record lock", zap.Int64("record_id", recordID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	if !acquired {
		return nil, errors.StoreUnavailable.WithMessage("该记录正在审批中，请稍后重试")
	}
	defer func() {
		if err := s.locker.Unlock(ctx, lockKey); err != nil {
			logger.Logger.Warn("Failed to release record lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		logger.Logger.Error("Failed to query record", zap.Int64("record_id", recordID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	if record == nil {
		return nil, errors.RecordNotFound
	}
	if record.Approved {
		return nil, errors.AlreadyApproved
	}
	if record.Rejected {
		return nil, errors.AlreadyRejected
	}

	now := s.now()
	record.Approved = true
	record.ApprovedBy = approver
	record.ApprovalTime = &now
	if req != nil && req.WorkContent != "" {
		record.WorkContent = req.WorkContent
	}

	if err := s.records.Update(ctx, record); err != nil {
		logger.Logger.Error("Failed to update record", zap.Int64("record_id", recordID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	if err := queue.PublishApprovalDecision(record, "approved", approver, ""); err != nil {
		logger.Logger.Warn("Failed to publish approval event", zap.Int64("record_id", recordID), zap.Error(err))
	}

	logger.Logger.Info("Record approved",
		zap.Int64("record_id", recordID),
		zap.String("approver", approver),
	)
	return record, nil
}

// Reject 审批驳回。已驳回的记录允许再次驳回并刷新驳回人、时间与原因
func (s *ApprovalService) Reject(ctx context.Context, recordID int64, approver string, req *dto.RejectRequest) (*model.CheckInRecord, error) {
	lockKey := recordLockKey(recordID)
	acquired, err := s.locker.Lock(ctx, lockKey, sessionLockTTL)
	if err != nil {
		logger.Logger.Error("Failed to acquire record lock", zap.Int64("record_id", recordID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	if !acquired {
		return nil, errors.StoreUnavailable.WithMessage("该记录正在审批中，请稍后重试")
	}
	defer func() {
		if err := s.locker.Unlock(ctx, lockKey); err != nil {
			logger.Logger.Warn("Failed to release record lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		logger.Logger.Error("Failed to query record", zap.Int64("record_id", recordID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	if record == nil {
		return nil, errors.RecordNotFound
	}
	if record.Approved {
		return nil, errors.AlreadyApproved.WithMessage("该记录已经审批通过，无法驳回")
	}

	now := s.now()
	reason := ""
	if req != nil {
		reason = req.RejectionReason
	}
	record.Rejected = true
	record.RejectedBy = approver
	record.RejectionTime = &now
	record.RejectionReason = reason

	if err := s.records.Update(ctx, record); err != nil {
		logger.Logger.Error("Failed to update record", zap.Int64("record_id", recordID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	if err := queue.PublishApprovalDecision(record, "rejected", approver, reason); err != nil {
		logger.Logger.Warn("Failed to publish approval event", zap.Int64("record_id", recordID), zap.Error(err))
	}

	logger.Logger.Info("Record rejected",
		zap.Int64("record_id", recordID),
		zap.String("approver", approver),
	)
	return record, nil
}

// ListPending 待审批记录，未通过且未驳回
func (s *ApprovalService) ListPending(ctx context.Context) ([]model.CheckInRecord, error) {
	records, err := s.records.ListPending(ctx)
	if err != nil {
		logger.Logger.Error("Failed to list pending records", zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	return records, nil
}

// ListApproved 已通过记录，按审批时间倒序
func (s *ApprovalService) ListApproved(ctx context.Context) ([]model.CheckInRecord, error) {
	records, err := s.records.ListApproved(ctx)
	if err != nil {
		logger.Logger.Error("Failed to list approved records", zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	return records, nil
}

// ListRejected 已驳回记录，按驳回时间倒序
func (s *ApprovalService) ListRejected(ctx context.Context) ([]model.CheckInRecord, error) {
	records, err := s.records.ListRejected(ctx)
	if err != nil {
		logger.Logger.Error("Failed to list rejected records", zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	return records, nil
}
