package model

import "time"

// CheckInRecord 打卡记录模型，JSON 字段名与移动端约定保持一致
type CheckInRecord struct {
	BaseModel
	UserID      int64     `gorm:"not null;index:idx_checkin_records_user_type_time" json:"userId"`
	UserName    string    `gorm:"type:varchar(64)" json:"userName"`
	Type        string    `gorm:"type:varchar(16);not null;index:idx_checkin_records_user_type_time" json:"type"`
	SubType     string    `gorm:"type:varchar(16)" json:"subType,omitempty"`
	Status      string    `gorm:"type:varchar(16);not null;default:'checked_in'" json:"status"`
	CheckInTime time.Time `gorm:"not null;index:idx_checkin_records_user_type_time" json:"checkInTime"`

	CheckOutTime *time.Time `gorm:"type:timestamptz" json:"checkOutTime,omitempty"`
	WorkHours    *float64   `json:"workHours,omitempty"`
	WorkContent  string     `gorm:"type:text" json:"workContent,omitempty"`

	// 审批子状态，approved 与 rejected 互斥且只写一次
	Approved        bool       `gorm:"not null;default:false;index:idx_checkin_records_approval" json:"approved"`
	ApprovedBy      string     `gorm:"type:varchar(64)" json:"approvedBy,omitempty"`
	ApprovalTime    *time.Time `gorm:"type:timestamptz" json:"approvalTime,omitempty"`
	Rejected        bool       `gorm:"not null;default:false;index:idx_checkin_records_approval" json:"rejected"`
	RejectedBy      string     `gorm:"type:varchar(64)" json:"rejectedBy,omitempty"`
	RejectionTime   *time.Time `gorm:"type:timestamptz" json:"rejectionTime,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejectionReason,omitempty"`

	Location  string   `gorm:"type:varchar(255)" json:"location,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	ProjectID   *int64 `gorm:"index" json:"projectId,omitempty"`
	ProjectName string `gorm:"type:varchar(128)" json:"projectName,omitempty"`
}

// TableName 指定表名
func (CheckInRecord) TableName() string {
	return "checkin_records"
}

// IsCheckedIn 是否处于已签到未签退状态
func (r *CheckInRecord) IsCheckedIn() bool {
	return r.Status == string(StatusCheckedIn)
}
