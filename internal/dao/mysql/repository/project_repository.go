// Package repository 提供数据访问层的具体实现
// 本文件实现 ProjectRepository 接口
package repository

import (
	"devconnect_server/internal/model"

	"gorm.io/gorm"
)

// projectRepository ProjectRepository 接口的实现
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建 ProjectRepository 实例
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// FindByUuid 根据 UUID 查找项目
func (r *projectRepository) FindByUuid(uuid string) (*model.Project, error) {
	var project model.Project
	if err := r.db.First(&project, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询项目 uuid=%s", uuid)
	}
	return &project, nil
}

// FindByUser 查找用户的所有项目
func (r *projectRepository) FindByUser(userUuid string) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.Where("user_uuid = ?", userUuid).Find(&projects).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户项目 user=%s", userUuid)
	}
	return projects, nil
}

// Create 创建项目条目
func (r *projectRepository) Create(project *model.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		return wrapDBError(err, "创建项目")
	}
	return nil
}

// Update 更新项目条目
func (r *projectRepository) Update(project *model.Project) error {
	if err := r.db.Save(project).Error; err != nil {
		return wrapDBError(err, "更新项目")
	}
	return nil
}

// Delete 软删除项目条目
func (r *projectRepository) Delete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Project{}).Error; err != nil {
		return wrapDBErrorf(err, "删除项目 uuid=%s", uuid)
	}
	return nil
}

// DeleteByUsers 批量软删除指定用户的所有项目
func (r *projectRepository) DeleteByUsers(userUuids []string) error {
	if len(userUuids) == 0 {
		return nil
	}
	if err := r.db.Where("user_uuid IN ?", userUuids).Delete(&model.Project{}).Error; err != nil {
		return wrapDBError(err, "批量删除用户项目")
	}
	return nil
}
