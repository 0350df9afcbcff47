package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/GreaLake/checkIn/internal/model"
)

// ProjectStore 项目只读契约，项目维护归管理后台
type ProjectStore interface {
	// GetByID 不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	// FindActiveByName 按名称查启用中的项目，不存在时返回 (nil, nil)
	FindActiveByName(ctx context.Context, projectName string) (*model.Project, error)
	// ListActive 启用中且编码、名称齐全的项目，按编码升序
	ListActive(ctx context.Context) ([]model.Project, error)
}

type projectStore struct {
	db *gorm.DB
}

// NewProjectStore 基于 gorm 的 ProjectStore 实现
func NewProjectStore(db *gorm.DB) ProjectStore {
	return &projectStore{db: db}
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	return &project, nil
}

func (s *projectStore) FindActiveByName(ctx context.Context, projectName string) (*model.Project, error) {
	var project model.Project
	err := s.db.WithContext(ctx).
		Where("project_name = ? AND status = ?", projectName, model.ProjectStatusActive).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query project: %w", err)
	}
	return &project, nil
}

func (s *projectStore) ListActive(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.WithContext(ctx).
		Where("status = ?", model.ProjectStatusActive).
		Where("project_code <> '' AND project_name <> ''").
		Order("project_code ASC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active projects: %w", err)
	}
	return projects, nil
}
