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
	"github.com/GreaLake/checkIn/pkg/snowflake"
	"github.com/GreaLake/checkIn/storage/database"
	"github.com/GreaLake/checkIn/utils"
)

// 会话锁有效期，覆盖一次签到/签退请求的处理上限
const sessionLockTTL = 5 * time.Second

var (
	checkInService *CheckInService
	checkInOnce    sync.Once
)

// CheckInService 签到签退服务，三类打卡互为独立会话
type CheckInService struct {
	records  repository.RecordStore
	projects repository.ProjectStore
	locker   cache.Locker
	now      func() time.Time
}

// NewCheckInService 由调用方注入依赖，便于替换存储与时钟
func NewCheckInService(records repository.RecordStore, projects repository.ProjectStore, locker cache.Locker) *CheckInService {
	return &CheckInService{
		records:  records,
		projects: projects,
		locker:   locker,
		now:      time.Now,
	}
}

func GetCheckInService() *CheckInService {
	checkInOnce.Do(func() {
		checkInService = NewCheckInService(
			repository.NewRecordStore(database.DB()),
			repository.NewProjectStore(database.DB()),
			cache.NewRedisLocker(),
		)
	})
	return checkInService
}

func sessionLockKey(userID int64, typ string) string {
	return fmt.Sprintf("session:%d:%s", userID, typ)
}

// CheckIn 签到。同一用户同一类型当日仅允许一个未签退会话，
// 并发请求靠分布式锁串行化
func (s *CheckInService) CheckIn(ctx context.Context, userID int64, req *dto.CheckInRequest) (*model.CheckInRecord, error) {
	if req.Type == "" {
		return nil, errors.InvalidArgument
	}
	if !model.IsValidType(req.Type) {
		return nil, errors.InvalidArgument.WithMessage("无效的打卡类型: " + req.Type)
	}

	lockKey := sessionLockKey(userID, req.Type)
	acquired, err := s.locker.Lock(ctx, lockKey, sessionLockTTL)
	if err != nil {
		logger.Logger.Error("Failed to acquire session lock",
			zap.Int64("user_id", userID),
			zap.String("type", req.Type),
			zap.Error(err),
		)
		return nil, errors.StoreUnavailable
	}
	if !acquired {
		return nil, errors.DuplicateSession.WithMessage(
			fmt.Sprintf("今日%s已签到，请先签退", model.TypeLabel(req.Type)))
	}
	defer func() {
		if err := s.locker.Unlock(ctx, lockKey); err != nil {
			logger.Logger.Warn("Failed to release session lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	now := s.now()
	existing, err := s.records.FindOpenOnDay(ctx, userID, req.Type, now)
	if err != nil {
		logger.Logger.Error("Failed to query open session", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	if existing != nil {
		return nil, errors.DuplicateSession.WithMessage(
			fmt.Sprintf("今日%s已签到，请先签退", model.TypeLabel(req.Type)))
	}

	id, err := snowflake.NextID()
	if err != nil {
		logger.Logger.Error("Failed to generate record id", zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	record := &model.CheckInRecord{
		BaseModel:   model.BaseModel{ID: id},
		UserID:      userID,
		UserName:    req.UserName,
		Type:        req.Type,
		SubType:     req.SubType,
		Status:      string(model.StatusCheckedIn),
		CheckInTime: now,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if req.ProjectID != nil {
		record.ProjectID = req.ProjectID
		project, err := s.projects.GetByID(ctx, *req.ProjectID)
		if err != nil {
			logger.Logger.Warn("Failed to resolve project name", zap.Int64("project_id", *req.ProjectID), zap.Error(err))
		} else if project != nil {
			record.ProjectName = project.ProjectName
		}
	}

	if err := s.records.Create(ctx, record); err != nil {
		logger.Logger.Error("Failed to create checkin record", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	// 事件发布失败不影响签到结果，审批人可从待审批列表兜底
	if err := queue.PublishCheckInSubmitted(record); err != nil {
		logger.Logger.Warn("Failed to publish checkin event", zap.Int64("record_id", record.ID), zap.Error(err))
	}

	logger.Logger.Info("User checked in",
		zap.Int64("user_id", userID),
		zap.String("type", req.Type),
		zap.Int64("record_id", record.ID),
	)
	return record, nil
}

// CheckOut 签退。取该类型最近一条记录，要求已审批通过且未签退，
// 工时按分钟截断折算成小时
func (s *CheckInService) CheckOut(ctx context.Context, userID int64, req *dto.CheckOutRequest) (*model.CheckInRecord, error) {
	if req.Type == "" {
		return nil, errors.InvalidArgument
	}
	if !model.IsValidType(req.Type) {
		return nil, errors.InvalidArgument.WithMessage("无效的打卡类型: " + req.Type)
	}

	lockKey := sessionLockKey(userID, req.Type)
	acquired, err := s.locker.Lock(ctx, lockKey, sessionLockTTL)
	if err != nil {
		logger.Logger.Error("Failed to acquire session lock",
			zap.Int64("user_id", userID),
			zap.String("type", req.Type),
			zap.Error(err),
		)
		return nil, errors.StoreUnavailable
	}
	if !acquired {
		return nil, errors.NoOpenSession.WithMessage(
			fmt.Sprintf("没有找到有效的%s签到记录", model.TypeLabel(req.Type)))
	}
	defer func() {
		if err := s.locker.Unlock(ctx, lockKey); err != nil {
			logger.Logger.Warn("Failed to release session lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	record, err := s.records.FindLatestByType(ctx, userID, req.Type)
	if err != nil {
		logger.Logger.Error("Failed to query latest record", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	if record == nil || !record.IsCheckedIn() {
		return nil, errors.NoOpenSession.WithMessage(
			fmt.Sprintf("没有找到有效的%s签到记录", model.TypeLabel(req.Type)))
	}
	if record.Rejected {
		return nil, errors.RecordRejected
	}
	if !record.Approved {
		return nil, errors.NotApproved
	}

	if req.CheckOutTime == "" {
		return nil, errors.InvalidTimestamp.WithMessage("签退时间不能为空")
	}
	checkOutTime, err := utils.ParseDateTime(req.CheckOutTime)
	if err != nil {
		return nil, errors.InvalidTimestamp
	}
	if checkOutTime.Before(record.CheckInTime) {
		return nil, errors.InvalidTimestamp.WithMessage("签退时间不能早于签到时间")
	}

	workHours := utils.TruncatedHours(checkOutTime.Sub(record.CheckInTime))

	record.Status = string(model.StatusCheckedOut)
	record.CheckOutTime = &checkOutTime
	record.WorkHours = &workHours
	if req.WorkContent != "" {
		record.WorkContent = req.WorkContent
	}
	if req.Type == string(model.TypeConstruction) && req.ProjectID != nil {
		record.ProjectID = req.ProjectID
		project, err := s.projects.GetByID(ctx, *req.ProjectID)
		if err != nil {
			logger.Logger.Warn("Failed to resolve project name", zap.Int64("project_id", *req.ProjectID), zap.Error(err))
		} else if project != nil {
			record.ProjectName = project.ProjectName
		}
	}

	if err := s.records.Update(ctx, record); err != nil {
		logger.Logger.Error("Failed to update checkin record", zap.Int64("record_id", record.ID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	logger.Logger.Info("User checked out",
		zap.Int64("user_id", userID),
		zap.String("type", req.Type),
		zap.Int64("record_id", record.ID),
		zap.Float64("work_hours", workHours),
	)
	return record, nil
}

// CurrentStatus 单一类型的签到状态，取该类型最近一条记录，
// 不限日期，已签退的记录照常返回且 isCheckedIn 为 false
func (s *CheckInService) CurrentStatus(ctx context.Context, userID int64, typ string) (*dto.TypeStatus, error) {
	if !model.IsValidType(typ) {
		return nil, errors.InvalidArgument.WithMessage("无效的打卡类型: " + typ)
	}

	record, err := s.records.FindLatestByType(ctx, userID, typ)
	if err != nil {
		logger.Logger.Error("Failed to query status", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	status := &dto.TypeStatus{}
	if record != nil {
		status.CurrentRecord = record
		status.IsCheckedIn = record.IsCheckedIn()
	}
	return status, nil
}

// StatusAll 三类打卡的当前状态，键形如 constructionRecord / constructionCheckedIn
func (s *CheckInService) StatusAll(ctx context.Context, userID int64) (map[string]interface{}, error) {
	result := make(map[string]interface{}, len(model.AllTypes)*2)
	for _, typ := range model.AllTypes {
		status, err := s.CurrentStatus(ctx, userID, string(typ))
		if err != nil {
			return nil, err
		}
		result[string(typ)+"Record"] = status.CurrentRecord
		result[string(typ)+"CheckedIn"] = status.IsCheckedIn
	}
	return result, nil
}

// TodayRecords 当日全部打卡记录，按签到时间升序
func (s *CheckInService) TodayRecords(ctx context.Context, userID int64) ([]model.CheckInRecord, error) {
	records, err := s.records.ListByUserOnDay(ctx, userID, s.now())
	if err != nil {
		logger.Logger.Error("Failed to list today records", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	return records, nil
}
