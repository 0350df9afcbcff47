package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel ID 由 snowflake 生成器在创建时分配，软删除由存储层负责
type BaseModel struct {
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	ID        int64          `gorm:"primaryKey" json:"id"`
}
