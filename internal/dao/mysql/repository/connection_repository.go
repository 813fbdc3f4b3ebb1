// Package repository 提供数据访问层的具体实现
// 本文件实现 ConnectionRepository 接口，处理连接请求相关的数据库操作
package repository

import (
	"devconnect_server/internal/model"
	"devconnect_server/pkg/enum/connection/connection_status_enum"

	"gorm.io/gorm"
)

// connectionRepository ConnectionRepository 接口的实现
type connectionRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewConnectionRepository 创建 ConnectionRepository 实例
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// FindByUuid 根据 UUID 查找连接
func (r *connectionRepository) FindByUuid(uuid string) (*model.Connection, error) {
	var conn model.Connection
	if err := r.db.First(&conn, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询连接 uuid=%s", uuid)
	}
	return &conn, nil
}

// FindBetween 查找两个用户之间的连接
// 同时检查两个方向，保证一对用户最多一条记录的约束
func (r *connectionRepository) FindBetween(userA, userB string) (*model.Connection, error) {
	var conn model.Connection
	err := r.db.Where(
		"(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
		userA, userB, userB, userA,
	).First(&conn).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询连接 userA=%s userB=%s", userA, userB)
	}
	return &conn, nil
}

// FindAllByUser 查找用户作为任意一方的所有连接
// 用于发现列表排除已有连接的用户
func (r *connectionRepository) FindAllByUser(userId string) ([]model.Connection, error) {
	var conns []model.Connection
	if err := r.db.Where("requester_id = ? OR recipient_id = ?", userId, userId).Find(&conns).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询用户连接 userId=%s", userId)
	}
	return conns, nil
}

// Create 创建连接记录
func (r *connectionRepository) Create(conn *model.Connection) error {
	if err := r.db.Create(conn).Error; err != nil {
		return wrapDBError(err, "创建连接")
	}
	return nil
}

// Update 更新连接记录（全字段更新）
func (r *connectionRepository) Update(conn *model.Connection) error {
	if err := r.db.Save(conn).Error; err != nil {
		return wrapDBError(err, "更新连接")
	}
	return nil
}

// Delete 物理删除连接记录
// 使用 Unscoped 跳过软删除，被拒绝或移除后对方可以重新发起申请
func (r *connectionRepository) Delete(uuid string) error {
	if err := r.db.Unscoped().Where("uuid = ?", uuid).Delete(&model.Connection{}).Error; err != nil {
		return wrapDBErrorf(err, "删除连接 uuid=%s", uuid)
	}
	return nil
}

// CountAcceptedByUser 统计用户已接受的连接数
func (r *connectionRepository) CountAcceptedByUser(userId string) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Connection{}).
		Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
			userId, userId, connection_status_enum.ACCEPTED).
		Count(&cnt).Error
	if err != nil {
		return 0, wrapDBError(err, "统计已接受连接数")
	}
	return cnt, nil
}

// CountPendingByRecipient 统计用户收到的待处理申请数
func (r *connectionRepository) CountPendingByRecipient(userId string) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Connection{}).
		Where("recipient_id = ? AND status = ?", userId, connection_status_enum.PENDING).
		Count(&cnt).Error
	if err != nil {
		return 0, wrapDBError(err, "统计收到的待处理申请数")
	}
	return cnt, nil
}

// CountPendingByRequester 统计用户发出的待处理申请数
func (r *connectionRepository) CountPendingByRequester(userId string) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Connection{}).
		Where("requester_id = ? AND status = ?", userId, connection_status_enum.PENDING).
		Count(&cnt).Error
	if err != nil {
		return 0, wrapDBError(err, "统计发出的待处理申请数")
	}
	return cnt, nil
}

// SoftDeleteByUsers 批量软删除指定用户参与的所有连接
// 用于用户注销时的级联清理
func (r *connectionRepository) SoftDeleteByUsers(userUuids []string) error {
	if len(userUuids) == 0 {
		return nil
	}
	if err := r.db.Where("requester_id IN ? OR recipient_id IN ?", userUuids, userUuids).
		Delete(&model.Connection{}).Error; err != nil {
		return wrapDBError(err, "批量删除用户连接")
	}
	return nil
}
