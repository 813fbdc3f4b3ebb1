// Package repository 提供数据访问层的具体实现
// 本文件实现 MessageRepository 接口，处理单聊和群聊消息的数据库操作
package repository

import (
	"devconnect_server/internal/model"

	"gorm.io/gorm"
)

// messageRepository MessageRepository 接口的实现
type messageRepository struct {
	db *gorm.DB // GORM 数据库实例
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create 创建消息记录
func (r *messageRepository) Create(msg *model.Message) error {
	if err := r.db.Create(msg).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// FindByUuid 根据雪花 ID 查找消息
func (r *messageRepository) FindByUuid(uuid int64) (*model.Message, error) {
	var msg model.Message
	if err := r.db.First(&msg, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 uuid=%d", uuid)
	}
	return &msg, nil
}

// FindDirectPage 分页查询两个用户之间的单聊消息
// 按创建时间倒序返回，最新消息在前，调用方负责翻转为时间正序
func (r *messageRepository) FindDirectPage(userA, userB string, skip, take int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Where(
		"is_group = ? AND ((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))",
		false, userA, userB, userB, userA,
	).Order("created_at DESC, id DESC").Offset(skip).Limit(take).Find(&msgs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询单聊消息 userA=%s userB=%s", userA, userB)
	}
	return msgs, nil
}

// FindGroupPage 分页查询群聊消息
// 排序与分页语义同 FindDirectPage
func (r *messageRepository) FindGroupPage(groupUuid string, skip, take int) ([]model.Message, error) {
	var msgs []model.Message
	err := r.db.Where("is_group = ? AND group_uuid = ?", true, groupUuid).
		Order("created_at DESC, id DESC").Offset(skip).Limit(take).Find(&msgs).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询群聊消息 group=%s", groupUuid)
	}
	return msgs, nil
}

// FindDirectPartners 查找与用户有过单聊往来的所有对端 UUID
// 合并用户作为发送方和接收方两个方向的对端并去重
func (r *messageRepository) FindDirectPartners(userId string) ([]string, error) {
	var sent []string
	err := r.db.Model(&model.Message{}).Distinct("recipient_id").
		Where("is_group = ? AND sender_id = ?", false, userId).
		Pluck("recipient_id", &sent).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询单聊对端 userId=%s", userId)
	}
	var received []string
	err = r.db.Model(&model.Message{}).Distinct("sender_id").
		Where("is_group = ? AND recipient_id = ?", false, userId).
		Pluck("sender_id", &received).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询单聊对端 userId=%s", userId)
	}
	seen := make(map[string]struct{}, len(sent)+len(received))
	partners := make([]string, 0, len(sent)+len(received))
	for _, id := range append(sent, received...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		partners = append(partners, id)
	}
	return partners, nil
}

// FindLastDirect 查找两个用户之间最新的一条单聊消息
func (r *messageRepository) FindLastDirect(userA, userB string) (*model.Message, error) {
	var msg model.Message
	err := r.db.Where(
		"is_group = ? AND ((sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?))",
		false, userA, userB, userB, userA,
	).Order("created_at DESC, id DESC").First(&msg).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "查询最新单聊消息 userA=%s userB=%s", userA, userB)
	}
	return &msg, nil
}

// CountUnreadDirectFrom 统计 sender 发给 recipient 的未读单聊消息数
func (r *messageRepository) CountUnreadDirectFrom(senderId, recipientId string) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Message{}).
		Where("is_group = ? AND sender_id = ? AND recipient_id = ? AND `read` = ?",
			false, senderId, recipientId, false).
		Count(&cnt).Error
	if err != nil {
		return 0, wrapDBError(err, "统计未读单聊消息")
	}
	return cnt, nil
}

// CountUnreadGroup 统计群内非指定用户发送的未读消息数
func (r *messageRepository) CountUnreadGroup(groupUuid, excludeSender string) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Message{}).
		Where("is_group = ? AND group_uuid = ? AND sender_id != ? AND `read` = ?",
			true, groupUuid, excludeSender, false).
		Count(&cnt).Error
	if err != nil {
		return 0, wrapDBError(err, "统计群聊未读消息")
	}
	return cnt, nil
}

// MarkDirectRead 将 sender 发给 recipient 的所有未读单聊消息置为已读
func (r *messageRepository) MarkDirectRead(senderId, recipientId string) error {
	err := r.db.Model(&model.Message{}).
		Where("is_group = ? AND sender_id = ? AND recipient_id = ? AND `read` = ?",
			false, senderId, recipientId, false).
		Update("read", true).Error
	if err != nil {
		return wrapDBError(err, "批量标记单聊已读")
	}
	return nil
}

// MarkGroupRead 将群内非指定用户发送的未读消息置为已读
func (r *messageRepository) MarkGroupRead(groupUuid, excludeSender string) error {
	err := r.db.Model(&model.Message{}).
		Where("is_group = ? AND group_uuid = ? AND sender_id != ? AND `read` = ?",
			true, groupUuid, excludeSender, false).
		Update("read", true).Error
	if err != nil {
		return wrapDBError(err, "批量标记群聊已读")
	}
	return nil
}

// MarkReadByUuid 将指定消息置为已读
// 仅当接收者匹配时生效，返回受影响的行数
func (r *messageRepository) MarkReadByUuid(uuid int64, recipientId string) (int64, error) {
	result := r.db.Model(&model.Message{}).
		Where("uuid = ? AND recipient_id = ?", uuid, recipientId).
		Update("read", true)
	if result.Error != nil {
		return 0, wrapDBErrorf(result.Error, "标记消息已读 uuid=%d", uuid)
	}
	return result.RowsAffected, nil
}
