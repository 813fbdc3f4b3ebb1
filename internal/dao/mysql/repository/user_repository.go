// Package repository 提供数据访问层的具体实现
// 本文件实现 UserRepository 接口，处理用户相关的数据库操作
package repository

import (
	"time"

	"devconnect_server/internal/model"
	"devconnect_server/pkg/enum/user/user_status_enum"

	"gorm.io/gorm"
)

// userRepository UserRepository 接口的实现
type userRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByUuid 根据 UUID 查找用户
func (r *userRepository) FindByUuid(uuid string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 uuid=%s", uuid)
	}
	return &user, nil
}

// FindByEmail 根据邮箱查找用户
// 用于登录和注册时的唯一性校验
func (r *userRepository) FindByEmail(email string) (*model.UserInfo, error) {
	var user model.UserInfo
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户 email=%s", email)
	}
	return &user, nil
}

// FindAllExcept 查找除指定用户外的所有正常状态用户
// 用于好友发现列表
func (r *userRepository) FindAllExcept(excludeUuid string) ([]model.UserInfo, error) {
	var users []model.UserInfo
	if err := r.db.Where("uuid != ? AND status = ?", excludeUuid, user_status_enum.NORMAL).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "查询用户列表")
	}
	return users, nil
}

// FindByUuids 批量根据 UUID 查找用户
func (r *userRepository) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var users []model.UserInfo
	if len(uuids) == 0 {
		return users, nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, wrapDBError(err, "批量查询用户")
	}
	return users, nil
}

// Create 创建新用户
func (r *userRepository) Create(user *model.UserInfo) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapDBError(err, "创建用户")
	}
	return nil
}

// Update 更新用户信息（全字段更新）
func (r *userRepository) Update(user *model.UserInfo) error {
	if err := r.db.Save(user).Error; err != nil {
		return wrapDBError(err, "更新用户")
	}
	return nil
}

// UpdateLastOnline 刷新用户最后在线时间
func (r *userRepository) UpdateLastOnline(uuid string) error {
	if err := r.db.Model(&model.UserInfo{}).Where("uuid = ?", uuid).
		Update("last_online_at", time.Now()).Error; err != nil {
		return wrapDBErrorf(err, "更新最后在线时间 uuid=%s", uuid)
	}
	return nil
}

// UpdateStatusByUuids 批量更新用户状态（启用/禁用）
func (r *userRepository) UpdateStatusByUuids(uuids []string, status int8) error {
	if len(uuids) == 0 {
		return nil
	}
	if err := r.db.Model(&model.UserInfo{}).Where("uuid IN ?", uuids).
		Update("status", status).Error; err != nil {
		return wrapDBError(err, "批量更新用户状态")
	}
	return nil
}

// SoftDeleteByUuids 批量软删除用户
func (r *userRepository) SoftDeleteByUuids(uuids []string) error {
	if len(uuids) == 0 {
		return nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Delete(&model.UserInfo{}).Error; err != nil {
		return wrapDBError(err, "批量删除用户")
	}
	return nil
}

// CountAll 统计注册用户总数
func (r *userRepository) CountAll() (int64, error) {
	var cnt int64
	if err := r.db.Model(&model.UserInfo{}).Count(&cnt).Error; err != nil {
		return 0, wrapDBError(err, "统计用户总数")
	}
	return cnt, nil
}
