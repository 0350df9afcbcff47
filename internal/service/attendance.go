package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GreaLake/checkIn/internal/model"
	"github.com/GreaLake/checkIn/internal/model/dto"
	"github.com/GreaLake/checkIn/internal/repository"
	"github.com/GreaLake/checkIn/pkg/errors"
	"github.com/GreaLake/checkIn/pkg/logger"
	"github.com/GreaLake/checkIn/storage/database"
	"github.com/GreaLake/checkIn/utils"
)

var (
	attendanceService *AttendanceService
	attendanceOnce    sync.Once
)

// ExportHeaders 导出表头，移动端与报表模板按列序解析，不可调整
var ExportHeaders = []string{
	"签到人", "签到类型", "签到时间", "签退时间", "工作时长(小时)", "签到地点", "工作内容", "审批时间",
}

// AttendanceService 工时统计服务，只读聚合
type AttendanceService struct {
	records  repository.RecordStore
	projects repository.ProjectStore
	now      func() time.Time
}

func NewAttendanceService(records repository.RecordStore, projects repository.ProjectStore) *AttendanceService {
	return &AttendanceService{
		records:  records,
		projects: projects,
		now:      time.Now,
	}
}

func GetAttendanceService() *AttendanceService {
	attendanceOnce.Do(func() {
		attendanceService = NewAttendanceService(
			repository.NewRecordStore(database.DB()),
			repository.NewProjectStore(database.DB()),
		)
	})
	return attendanceService
}

// recordHours 由起止时间折算工时，未签退按零计
func recordHours(r *model.CheckInRecord) float64 {
	if r.CheckOutTime == nil {
		return 0
	}
	return utils.TruncatedHours(r.CheckOutTime.Sub(r.CheckInTime))
}

// Records 已完成（通过审批且已签退）的记录，按签到时间倒序
func (s *AttendanceService) Records(ctx context.Context, filter repository.RecordFilter) ([]model.CheckInRecord, error) {
	records, err := s.records.ListCompleted(ctx, filter)
	if err != nil {
		logger.Logger.Error("Failed to list attendance records", zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	return records, nil
}

// Statistics 工时统计。总量与分类型工时各自累加，
// 并按签到人聚出个人桶
func (s *AttendanceService) Statistics(ctx context.Context, filter repository.RecordFilter) (*dto.Statistics, error) {
	records, err := s.records.ListCompleted(ctx, filter)
	if err != nil {
		logger.Logger.Error("Failed to list records for statistics", zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	return buildStatistics(records), nil
}

func buildStatistics(records []model.CheckInRecord) *dto.Statistics {
	stats := &dto.Statistics{
		TotalRecords: len(records),
		UserStats:    make(map[string]*dto.UserHourStat),
	}

	for i := range records {
		r := &records[i]
		hours := recordHours(r)
		stats.TotalHours += hours

		userStat, ok := stats.UserStats[r.UserName]
		if !ok {
			userStat = &dto.UserHourStat{}
			stats.UserStats[r.UserName] = userStat
		}
		userStat.TotalHours += hours
		userStat.RecordCount++

		switch r.Type {
		case string(model.TypeConstruction):
			stats.ConstructionHours += hours
			userStat.ConstructionHours += hours
		case string(model.TypeTravel):
			stats.TravelHours += hours
			userStat.TravelHours += hours
		case string(model.TypeStop):
			stats.StopHours += hours
			userStat.StopHours += hours
		}
	}
	return stats
}

// MonthlySummary 月度汇总，窗口为自然月
func (s *AttendanceService) MonthlySummary(ctx context.Context, year, month int) (*dto.MonthlySummary, error) {
	start, end := utils.MonthWindow(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local))

	records, err := s.records.ListCompleted(ctx, repository.RecordFilter{After: &start, Before: &end})
	if err != nil {
		logger.Logger.Error("Failed to list records for monthly summary", zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	summary := &dto.MonthlySummary{
		Year:         year,
		Month:        month,
		TotalRecords: len(records),
		DailyRecords: make(map[string]int64),
		UserRecords:  make(map[string]int64),
	}
	for i := range records {
		r := &records[i]
		summary.TotalHours += recordHours(r)
		summary.DailyRecords[r.CheckInTime.Format(utils.DateLayout)]++
		summary.UserRecords[r.UserName]++
	}
	return summary, nil
}

// UserStatistics 个人统计，月度窗口从月初到当前时刻
func (s *AttendanceService) UserStatistics(ctx context.Context, userID int64) (*dto.UserStatistics, error) {
	now := s.now()
	start, _ := utils.MonthWindow(now)

	monthRecords, err := s.records.ListCompleted(ctx, repository.RecordFilter{
		After:  &start,
		Before: &now,
		UserID: &userID,
	})
	if err != nil {
		logger.Logger.Error("Failed to list month records", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	allRecords, err := s.records.ListCompleted(ctx, repository.RecordFilter{UserID: &userID})
	if err != nil {
		logger.Logger.Error("Failed to list user records", zap.Int64("user_id", userID), zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	stats := &dto.UserStatistics{
		MonthRecords: len(monthRecords),
		TotalRecords: len(allRecords),
	}
	for i := range monthRecords {
		stats.MonthHours += recordHours(&monthRecords[i])
	}
	for i := range allRecords {
		stats.TotalHours += recordHours(&allRecords[i])
	}
	return stats, nil
}

// ProjectStatistics 项目维度统计。统计口径与整体统计不同，
// 只要求审批通过，未签退的记录计零工时。项目不存在时返回全零结果
func (s *AttendanceService) ProjectStatistics(ctx context.Context, projectName string) (*dto.ProjectStatistics, error) {
	result := &dto.ProjectStatistics{
		ProjectName:  projectName,
		DailyRecords: make(map[string]int64),
	}
	result.UserStats = make(map[string]*dto.UserHourStat)

	project, err := s.projects.FindActiveByName(ctx, projectName)
	if err != nil {
		logger.Logger.Error("Failed to query project", zap.String("project", projectName), zap.Error(err))
		return nil, errors.StoreUnavailable
	}
	if project == nil {
		return result, nil
	}

	records, err := s.records.ListApprovedByProject(ctx, project.ID)
	if err != nil {
		logger.Logger.Error("Failed to list project records", zap.String("project", projectName), zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	result.Statistics = *buildStatistics(records)
	for i := range records {
		result.DailyRecords[records[i].CheckInTime.Format(utils.DateLayout)]++
	}
	return result, nil
}

// ProjectList 可选项目列表，供施工打卡下拉选择
func (s *AttendanceService) ProjectList(ctx context.Context) ([]dto.ProjectInfo, error) {
	projects, err := s.projects.ListActive(ctx)
	if err != nil {
		logger.Logger.Error("Failed to list projects", zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	infos := make([]dto.ProjectInfo, 0, len(projects))
	for _, p := range projects {
		infos = append(infos, dto.ProjectInfo{
			ID:          p.ID,
			ProjectCode: p.ProjectCode,
			ProjectName: p.ProjectName,
		})
	}
	return infos, nil
}

// Export 导出已完成记录，表头与列序固定
func (s *AttendanceService) Export(ctx context.Context, filter repository.RecordFilter) (*dto.ExportData, error) {
	records, err := s.records.ListCompleted(ctx, filter)
	if err != nil {
		logger.Logger.Error("Failed to list records for export", zap.Error(err))
		return nil, errors.StoreUnavailable
	}

	csvData := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]

		checkOut := ""
		if r.CheckOutTime != nil {
			checkOut = r.CheckOutTime.Format(utils.DateTimeLayout)
		}
		approval := ""
		if r.ApprovalTime != nil {
			approval = r.ApprovalTime.Format(utils.DateTimeLayout)
		}

		csvData = append(csvData, []string{
			r.UserName,
			model.FullTypeLabel(r.Type, r.SubType),
			r.CheckInTime.Format(utils.DateTimeLayout),
			checkOut,
			fmt.Sprintf("%.2f", recordHours(r)),
			r.Location,
			r.WorkContent,
			approval,
		})
	}

	return &dto.ExportData{
		Records:    records,
		TotalCount: len(records),
		Headers:    ExportHeaders,
		CSVData:    csvData,
	}, nil
}
