// Package model 定义数据库实体模型
// 本文件定义用户之间的连接请求模型
package model

import (
	"gorm.io/gorm"
)

// Connection 连接请求模型
// 对应数据库 connection 表
// 两个用户之间无论方向最多只存在一条记录，方向由 requester/recipient 表达
type Connection struct {
	gorm.Model

	// Uuid 连接唯一标识，格式：C + 时间戳随机字符串
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);comment:连接唯一id"`

	// RequesterId 发起方用户 UUID
	RequesterId string `gorm:"column:requester_id;index;type:char(20);not null;comment:发起方uuid"`

	// RecipientId 接收方用户 UUID
	RecipientId string `gorm:"column:recipient_id;index;type:char(20);not null;comment:接收方uuid"`

	// Status 连接状态，0.申请中，1.已接受，2.已拒绝
	Status int8 `gorm:"column:status;not null;comment:状态，0.申请中，1.已接受，2.已拒绝"`
}

// TableName 指定表名
func (Connection) TableName() string {
	return "connection"
}
