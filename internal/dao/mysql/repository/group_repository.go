// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupRepository 接口，处理群组相关的数据库操作
package repository

import (
	"devconnect_server/internal/model"

	"gorm.io/gorm"
)

// groupRepository GroupRepository 接口的实现
type groupRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewGroupRepository 创建 GroupRepository 实例
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// FindByUuid 根据 UUID 查找群组
func (r *groupRepository) FindByUuid(uuid string) (*model.GroupInfo, error) {
	var group model.GroupInfo
	if err := r.db.First(&group, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群组 uuid=%s", uuid)
	}
	return &group, nil
}

// FindByUuids 批量根据 UUID 查找群组
func (r *groupRepository) FindByUuids(uuids []string) ([]model.GroupInfo, error) {
	var groups []model.GroupInfo
	if len(uuids) == 0 {
		return groups, nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Find(&groups).Error; err != nil {
		return nil, wrapDBError(err, "批量查询群组")
	}
	return groups, nil
}

// Create 创建新群组
func (r *groupRepository) Create(group *model.GroupInfo) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBError(err, "创建群组")
	}
	return nil
}

// Update 更新群组信息（全字段更新）
func (r *groupRepository) Update(group *model.GroupInfo) error {
	if err := r.db.Save(group).Error; err != nil {
		return wrapDBError(err, "更新群组")
	}
	return nil
}

// UpdateLastMessage 更新群组最新消息 ID
// GORM 的 Update 会同步刷新 updated_at，会话列表按该时间排序
func (r *groupRepository) UpdateLastMessage(uuid string, messageUuid int64) error {
	err := r.db.Model(&model.GroupInfo{}).Where("uuid = ?", uuid).
		Update("last_message_uuid", messageUuid).Error
	if err != nil {
		return wrapDBErrorf(err, "更新群组最新消息 uuid=%s", uuid)
	}
	return nil
}

// IncrementMemberCountBy 增加群成员数量（指定数量）
func (r *groupRepository) IncrementMemberCountBy(uuid string, count int) error {
	err := r.db.Model(&model.GroupInfo{}).Where("uuid = ?", uuid).
		Update("member_cnt", gorm.Expr("member_cnt + ?", count)).Error
	if err != nil {
		return wrapDBErrorf(err, "增加群成员数 uuid=%s", uuid)
	}
	return nil
}

// DecrementMemberCountBy 减少群成员数量（指定数量）
func (r *groupRepository) DecrementMemberCountBy(uuid string, count int) error {
	err := r.db.Model(&model.GroupInfo{}).Where("uuid = ?", uuid).
		Update("member_cnt", gorm.Expr("member_cnt - ?", count)).Error
	if err != nil {
		return wrapDBErrorf(err, "减少群成员数 uuid=%s", uuid)
	}
	return nil
}

// SoftDeleteByUuids 批量软删除群组
func (r *groupRepository) SoftDeleteByUuids(uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Delete(&model.GroupInfo{}).Error; err != nil {
		return wrapDBError(err, "批量删除群组")
	}
	return nil
}
