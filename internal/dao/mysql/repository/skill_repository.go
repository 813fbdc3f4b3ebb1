// Package repository 提供数据访问层的具体实现
// 本文件实现 SkillRepository 接口
package repository

import (
	"devconnect_server/internal/model"

	"gorm.io/gorm"
)

// skillRepository SkillRepository 接口的实现
type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository 创建 SkillRepository 实例
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

// FindByUuid 根据 UUID 查找技能
func (r *skillRepository) FindByUuid(uuid string) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.First(&skill, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询技能 uuid=%s", uuid)
	}
	return &skill, nil
}

// FindByUser 查找用户的所有技能
func (r *skillRepository) FindByUser(userUuid string) ([]model.Skill, error) {
	var skills []model.Skill
	if err := r.db.Where("user_uuid = ?", userUuid).Find(&skills).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户技能 user=%s", userUuid)
	}
	return skills, nil
}

// Create 创建技能条目
func (r *skillRepository) Create(skill *model.Skill) error {
	if err := r.db.Create(skill).Error; err != nil {
		return wrapDBError(err, "创建技能")
	}
	return nil
}

// Update 更新技能条目
func (r *skillRepository) Update(skill *model.Skill) error {
	if err := r.db.Save(skill).Error; err != nil {
		return wrapDBError(err, "更新技能")
	}
	return nil
}

// Delete 软删除技能条目
func (r *skillRepository) Delete(uuid string) error {
	if err := r.db.Where("uuid = ?", uuid).Delete(&model.Skill{}).Error; err != nil {
		return wrapDBErrorf(err, "删除技能 uuid=%s", uuid)
	}
	return nil
}

// DeleteByUsers 批量软删除指定用户的所有技能
func (r *skillRepository) DeleteByUsers(userUuids []string) error {
	if len(userUuids) == 0 {
		return nil
	}
	if err := r.db.Where("user_uuid IN ?", userUuids).Delete(&model.Skill{}).Error; err != nil {
		return wrapDBError(err, "批量删除用户技能")
	}
	return nil
}
