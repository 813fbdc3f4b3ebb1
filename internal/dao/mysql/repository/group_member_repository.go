// Package repository 提供数据访问层的具体实现
// 本文件实现 GroupMemberRepository 接口，处理群成员关系的数据库操作
package repository

import (
	"devconnect_server/internal/model"

	"gorm.io/gorm"
)

// groupMemberRepository GroupMemberRepository 接口的实现
type groupMemberRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewGroupMemberRepository 创建 GroupMemberRepository 实例
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// FindByGroupUuid 查找群组的所有成员记录
func (r *groupMemberRepository) FindByGroupUuid(groupUuid string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.Where("group_uuid = ?", groupUuid).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询群成员 group=%s", groupUuid)
	}
	return members, nil
}

// FindGroupUuidsByUser 查找用户加入的所有群组 UUID
func (r *groupMemberRepository) FindGroupUuidsByUser(userUuid string) ([]string, error) {
	var groupUuids []string
	err := r.db.Model(&model.GroupMember{}).
		Where("user_uuid = ?", userUuid).
		Pluck("group_uuid", &groupUuids).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询用户群组 user=%s", userUuid)
	}
	return groupUuids, nil
}

// FindMembersWithUserInfo 查找群成员（含用户详细信息）
// 联表查询用户表获取昵称和头像
func (r *groupMemberRepository) FindMembersWithUserInfo(groupUuid string) ([]GroupMemberWithUserInfo, error) {
	var members []GroupMemberWithUserInfo
	err := r.db.Table("group_member gm").
		Select("gm.user_uuid AS user_id, u.nickname, u.avatar, gm.role").
		Joins("JOIN user_info u ON u.uuid = gm.user_uuid AND u.deleted_at IS NULL").
		Where("gm.group_uuid = ? AND gm.deleted_at IS NULL", groupUuid).
		Scan(&members).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询群成员详情 group=%s", groupUuid)
	}
	return members, nil
}

// Exists 判断用户是否为群成员
func (r *groupMemberRepository) Exists(groupUuid, userUuid string) (bool, error) {
	var cnt int64
	err := r.db.Model(&model.GroupMember{}).
		Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Count(&cnt).Error
	if err != nil {
		return false, wrapDBErrorf(err, "查询群成员 group=%s user=%s", groupUuid, userUuid)
	}
	return cnt > 0, nil
}

// CreateBatch 批量添加群成员
func (r *groupMemberRepository) CreateBatch(members []model.GroupMember) error {
	if len(members) == 0 {
		return nil
	}
	if err := r.db.Create(&members).Error; err != nil {
		return wrapDBError(err, "批量添加群成员")
	}
	return nil
}

// Delete 移除单个群成员
func (r *groupMemberRepository) Delete(groupUuid, userUuid string) error {
	err := r.db.Where("group_uuid = ? AND user_uuid = ?", groupUuid, userUuid).
		Delete(&model.GroupMember{}).Error
	if err != nil {
		return wrapDBErrorf(err, "移除群成员 group=%s user=%s", groupUuid, userUuid)
	}
	return nil
}

// DeleteByGroupUuid 删除群组所有成员
func (r *groupMemberRepository) DeleteByGroupUuid(groupUuid string) error {
	if err := r.db.Where("group_uuid = ?", groupUuid).Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "删除群组成员 group=%s", groupUuid)
	}
	return nil
}

// DeleteByUserUuids 批量删除指定用户在所有群组的成员记录
// 用于用户注销时的级联清理
func (r *groupMemberRepository) DeleteByUserUuids(userUuids []string) error {
	if len(userUuids) == 0 {
		return nil
	}
	if err := r.db.Where("user_uuid IN ?", userUuids).Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBError(err, "批量删除群成员记录")
	}
	return nil
}
