package utils

import "time"

const (
	// DateTimeLayout 签退时间等表单字段的格式
	DateTimeLayout = "2006-01-02 15:04:05"
	// ISODateTimeLayout 查询参数的格式，移动端传 ISO 本地时间
	ISODateTimeLayout = "2006-01-02T15:04:05"
	// DateLayout 日维度聚合键的格式
	DateLayout = "2006-01-02"
)

// ParseDateTime 按 "yyyy-MM-dd HH:mm:ss" 解析本地时间
func ParseDateTime(value string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, value, time.Local)
}

// ParseISODateTime 按 "yyyy-MM-ddTHH:mm:ss" 解析本地时间
func ParseISODateTime(value string) (time.Time, error) {
	return time.ParseInLocation(ISODateTimeLayout, value, time.Local)
}

// MonthWindow 返回 t 所在自然月的起止时刻，
// 终点为下月初减一秒，与既有查询边界保持一致
func MonthWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// TruncatedHours 按分钟截断后折算小时数，秒级零头不计入工时
func TruncatedHours(d time.Duration) float64 {
	return float64(d/time.Minute) / 60.0
}
