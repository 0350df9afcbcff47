package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/GreaLake/checkIn/internal/model"
)

// RecordFilter 考勤记录过滤条件。时间边界为严格比较（> / <），
// 与原系统行为一致；Type 为空或 "all" 时不过滤类型。
type RecordFilter struct {
	After  *time.Time
	Before *time.Time
	UserID *int64
	Type   string
}

// RecordStore 打卡记录的窄存储契约，核心服务只依赖这一层
type RecordStore interface {
	Create(ctx context.Context, record *model.CheckInRecord) error
	Update(ctx context.Context, record *model.CheckInRecord) error
	// GetByID 不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id int64) (*model.CheckInRecord, error)
	// FindOpenOnDay 查某用户某类型在指定日历日内仍处于 checked_in 的记录
	FindOpenOnDay(ctx context.Context, userID int64, typ string, day time.Time) (*model.CheckInRecord, error)
	// FindLatestByType 查某用户某类型最近一条记录，不限日期与状态
	FindLatestByType(ctx context.Context, userID int64, typ string) (*model.CheckInRecord, error)
	ListPending(ctx context.Context) ([]model.CheckInRecord, error)
	ListApproved(ctx context.Context) ([]model.CheckInRecord, error)
	ListRejected(ctx context.Context) ([]model.CheckInRecord, error)
	// ListCompleted 已审批通过且已签退的记录，按签到时间倒序
	ListCompleted(ctx context.Context, filter RecordFilter) ([]model.CheckInRecord, error)
	// ListApprovedByProject 某项目下所有已审批记录（含未签退的）
	ListApprovedByProject(ctx context.Context, projectID int64) ([]model.CheckInRecord, error)
	// ListByUserOnDay 某用户指定日历日的全部记录，按签到时间升序
	ListByUserOnDay(ctx context.Context, userID int64, day time.Time) ([]model.CheckInRecord, error)
}

type recordStore struct {
	db *gorm.DB
}

// NewRecordStore 基于 gorm 的 RecordStore 实现
func NewRecordStore(db *gorm.DB) RecordStore {
	return &recordStore{db: db}
}

func (s *recordStore) Create(ctx context.Context, record *model.CheckInRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create checkin record: %w", err)
	}
	return nil
}

func (s *recordStore) Update(ctx context.Context, record *model.CheckInRecord) error {
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update checkin record: %w", err)
	}
	return nil
}

func (s *recordStore) GetByID(ctx context.Context, id int64) (*model.CheckInRecord, error) {
	var record model.CheckInRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query checkin record: %w", err)
	}
	return &record, nil
}

func (s *recordStore) FindOpenOnDay(ctx context.Context, userID int64, typ string, day time.Time) (*model.CheckInRecord, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var record model.CheckInRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ? AND status = ?", userID, typ, model.StatusCheckedIn).
		Where("check_in_time >= ? AND check_in_time < ?", dayStart, dayEnd).
		Order("check_in_time DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query open session: %w", err)
	}
	return &record, nil
}

func (s *recordStore) FindLatestByType(ctx context.Context, userID int64, typ string) (*model.CheckInRecord, error) {
	var record model.CheckInRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, typ).
		Order("check_in_time DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest record: %w", err)
	}
	return &record, nil
}

func (s *recordStore) ListPending(ctx context.Context) ([]model.CheckInRecord, error) {
	var records []model.CheckInRecord
	err := s.db.WithContext(ctx).
		Where("approved = ? AND rejected = ?", false, false).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending records: %w", err)
	}
	return records, nil
}

func (s *recordStore) ListApproved(ctx context.Context) ([]model.CheckInRecord, error) {
	var records []model.CheckInRecord
	err := s.db.WithContext(ctx).
		Where("approved = ?", true).
		Order("approval_time DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list approved records: %w", err)
	}
	return records, nil
}

func (s *recordStore) ListRejected(ctx context.Context) ([]model.CheckInRecord, error) {
	var records []model.CheckInRecord
	err := s.db.WithContext(ctx).
		Where("rejected = ?", true).
		Order("rejection_time DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rejected records: %w", err)
	}
	return records, nil
}

func (s *recordStore) ListCompleted(ctx context.Context, filter RecordFilter) ([]model.CheckInRecord, error) {
	query := s.db.WithContext(ctx).
		Where("approved = ?", true).
		Where("check_out_time IS NOT NULL")

	if filter.After != nil {
		query = query.Where("check_in_time > ?", *filter.After)
	}
	if filter.Before != nil {
		query = query.Where("check_in_time < ?", *filter.Before)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Type != "" && filter.Type != "all" {
		query = query.Where("type = ?", filter.Type)
	}

	var records []model.CheckInRecord
	if err := query.Order("check_in_time DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed records: %w", err)
	}
	return records, nil
}

func (s *recordStore) ListApprovedByProject(ctx context.Context, projectID int64) ([]model.CheckInRecord, error) {
	var records []model.CheckInRecord
	err := s.db.WithContext(ctx).
		Where("approved = ? AND project_id = ?", true, projectID).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list project records: %w", err)
	}
	return records, nil
}

func (s *recordStore) ListByUserOnDay(ctx context.Context, userID int64, day time.Time) ([]model.CheckInRecord, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var records []model.CheckInRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("check_in_time >= ? AND check_in_time < ?", dayStart, dayEnd).
		Order("check_in_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list today records: %w", err)
	}
	return records, nil
}
