package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/GreaLake/checkIn/internal/middleware"
	"github.com/GreaLake/checkIn/internal/repository"
	"github.com/GreaLake/checkIn/internal/service"
	"github.com/GreaLake/checkIn/pkg/errors"
	"github.com/GreaLake/checkIn/pkg/response"
	"github.com/GreaLake/checkIn/utils"
)

// parseRecordFilter 解析 startDate/endDate/userId/type 查询参数，
// 日期格式为 ISO 本地时间（yyyy-MM-ddTHH:mm:ss）
func parseRecordFilter(c *app.RequestContext) (repository.RecordFilter, error) {
	var filter repository.RecordFilter

	if raw := c.Query("startDate"); raw != "" {
		start, err := utils.ParseISODateTime(raw)
		if err != nil {
			return filter, err
		}
		filter.After = &start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := utils.ParseISODateTime(raw)
		if err != nil {
			return filter, err
		}
		filter.Before = &end
	}
	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.UserID = &userID
	}
	filter.Type = c.Query("type")

	return filter, nil
}

// Records 已完成的考勤记录
// GET /attendance/records
func Records(ctx context.Context, c *app.RequestContext) {
	filter, err := parseRecordFilter(c)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	records, err := service.GetAttendanceService().Records(ctx, filter)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, records)
}

// Statistics 工时统计
// GET /attendance/statistics
func Statistics(ctx context.Context, c *app.RequestContext) {
	filter, err := parseRecordFilter(c)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	stats, err := service.GetAttendanceService().Statistics(ctx, filter)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, stats)
}

// UserStatistics 个人统计，统计对象为当前登录用户
// GET /attendance/user-statistics
func UserStatistics(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.InvalidUserID)
		return
	}

	stats, err := service.GetAttendanceService().UserStatistics(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, stats)
}

// MonthlySummary 月度汇总，year/month 缺省取当前月
// GET /attendance/monthly-summary
func MonthlySummary(ctx context.Context, c *app.RequestContext) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BindError(ctx, c, err)
			return
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BindError(ctx, c, err)
			return
		}
		month = parsed
	}

	summary, err := service.GetAttendanceService().MonthlySummary(ctx, year, month)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, summary)
}

// ProjectList 可选项目列表
// GET /attendance/projects
func ProjectList(ctx context.Context, c *app.RequestContext) {
	projects, err := service.GetAttendanceService().ProjectList(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, projects)
}

// ProjectStatistics 项目维度统计
// GET /attendance/project-statistics
func ProjectStatistics(ctx context.Context, c *app.RequestContext) {
	stats, err := service.GetAttendanceService().ProjectStatistics(ctx, c.Query("projectName"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, stats)
}

// Export 导出考勤数据
// GET /attendance/export
func Export(ctx context.Context, c *app.RequestContext) {
	filter, err := parseRecordFilter(c)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	export, err := service.GetAttendanceService().Export(ctx, filter)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, export)
}
