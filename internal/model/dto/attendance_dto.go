package dto

import "github.com/GreaLake/checkIn/internal/model"

// ========== 考勤统计相关 DTO ==========
// JSON 字段名与原系统接口保持一致，移动端按这些键取值

// UserHourStat 单个用户的工时桶，键为 userName
type UserHourStat struct {
	TotalHours        float64 `json:"totalHours"`
	ConstructionHours float64 `json:"constructionHours"`
	TravelHours       float64 `json:"travelHours"`
	StopHours         float64 `json:"stopHours"`
	RecordCount       int     `json:"recordCount"`
}

// Statistics 工时统计结果
type Statistics struct {
	TotalRecords      int                      `json:"totalRecords"`
	TotalHours        float64                  `json:"totalHours"`
	ConstructionHours float64                  `json:"constructionHours"`
	TravelHours       float64                  `json:"travelHours"`
	StopHours         float64                  `json:"stopHours"`
	UserStats         map[string]*UserHourStat `json:"userStats"`
}

// MonthlySummary 月度汇总
type MonthlySummary struct {
	Year         int              `json:"year"`
	Month        int              `json:"month"`
	TotalRecords int              `json:"totalRecords"`
	TotalHours   float64          `json:"totalHours"`
	DailyRecords map[string]int64 `json:"dailyRecords"` // 键为 yyyy-MM-dd
	UserRecords  map[string]int64 `json:"userRecords"`  // 键为 userName
}

// UserStatistics 个人统计，month 为包含当前时刻的自然月
type UserStatistics struct {
	MonthRecords int     `json:"monthRecords"`
	MonthHours   float64 `json:"monthHours"`
	TotalRecords int     `json:"totalRecords"`
	TotalHours   float64 `json:"totalHours"`
}

// ProjectStatistics 项目维度统计，项目不存在时返回全零结果而非错误
type ProjectStatistics struct {
	ProjectName string `json:"projectName"`
	Statistics
	DailyRecords map[string]int64 `json:"dailyRecords"`
}

// ProjectInfo 项目列表条目
type ProjectInfo struct {
	ID          int64  `json:"id"`
	ProjectCode string `json:"projectCode"`
	ProjectName string `json:"projectName"`
}

// ExportData 导出结果，headers 为固定中文表头
type ExportData struct {
	Records    []model.CheckInRecord `json:"records"`
	TotalCount int                   `json:"totalCount"`
	Headers    []string              `json:"headers"`
	CSVData    [][]string            `json:"csvData"`
}
