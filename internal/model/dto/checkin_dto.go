package dto

// ========== 签到签退相关 DTO ==========

// CheckInRequest 签到请求，type 必填，其余字段按打卡类型选填
type CheckInRequest struct {
	UserName  string   `json:"userName"`
	Type      string   `json:"type"`
	SubType   string   `json:"subType"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	ProjectID *int64   `json:"projectId"`
}

// CheckOutRequest 签退请求，checkOutTime 格式 yyyy-MM-dd HH:mm:ss
type CheckOutRequest struct {
	Type         string `json:"type"`
	CheckOutTime string `json:"checkOutTime"`
	WorkContent  string `json:"workContent"`
	ProjectID    *int64 `json:"projectId"`
}

// TypeStatus 单一类型的当前签到状态
type TypeStatus struct {
	CurrentRecord interface{} `json:"currentRecord"`
	IsCheckedIn   bool        `json:"isCheckedIn"`
}
