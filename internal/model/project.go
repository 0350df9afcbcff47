package model

import "time"

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusSuspended ProjectStatus = "suspended"
)

// Project 项目模型，项目的增删改由管理后台负责，这里只读
type Project struct {
	BaseModel
	ProjectName string     `gorm:"type:varchar(128);index" json:"projectName"`
	ProjectCode string     `gorm:"type:varchar(64);index" json:"projectCode"`
	Location    string     `gorm:"type:varchar(255)" json:"location,omitempty"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Status      string     `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	StartDate   *time.Time `gorm:"type:timestamptz" json:"startDate,omitempty"`
	EndDate     *time.Time `gorm:"type:timestamptz" json:"endDate,omitempty"`
	ManagerID   *int64     `json:"managerId,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string {
	return "projects"
}
