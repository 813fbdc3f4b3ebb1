// Package model 定义数据库实体模型
// 本文件定义消息模型，单聊和群聊消息共用一张表
package model

import (
	"gorm.io/gorm"
)

// Message 消息模型
// 对应数据库 message 表
// IsGroup 决定寻址方式：单聊消息填 RecipientId，群聊消息填 GroupUuid，二者互斥
type Message struct {
	gorm.Model

	// Uuid 消息唯一标识
	// 使用雪花算法生成的 int64，bigint 避免 ID 溢出
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null;comment:消息雪花ID"`

	// SenderId 发送者 UUID，总是存在
	SenderId string `gorm:"column:sender_id;index;type:char(20);not null;comment:发送者uuid"`

	// RecipientId 接收者 UUID，仅单聊消息填写
	RecipientId string `gorm:"column:recipient_id;index;type:char(20);comment:接收者uuid"`

	// GroupUuid 群组 UUID，仅群聊消息填写
	GroupUuid string `gorm:"column:group_uuid;index;type:char(20);comment:群组uuid"`

	// IsGroup 是否群聊消息
	IsGroup bool `gorm:"column:is_group;not null;comment:是否群聊消息"`

	// Content 消息文本内容
	Content string `gorm:"column:content;type:TEXT;comment:消息内容"`

	// Type 消息类型：text / image / file
	Type string `gorm:"column:type;type:char(10);not null;comment:消息类型"`

	// Url 资源 URL，图片/文件消息使用
	Url string `gorm:"column:url;type:varchar(255);comment:资源url"`

	// Read 已读标志
	// 单聊表示接收方是否已查看；群聊按条记录，聚合口径为"至少一名非发送者成员已读"
	Read bool `gorm:"column:read;index;not null;comment:是否已读"`
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
