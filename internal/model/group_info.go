package model

import (
	"gorm.io/gorm"
)

// GroupInfo 群组（群聊房间）模型
// LastMessageUuid 为冗余字段，避免会话列表每次重查最新消息
type GroupInfo struct {
	gorm.Model
	Uuid            string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:群组唯一id"`
	Name            string `gorm:"column:name;type:varchar(30);not null;comment:群名称"`
	Description     string `gorm:"column:description;type:varchar(500);comment:群描述"`
	CreatorId       string `gorm:"column:creator_id;type:char(20);not null;comment:创建者uuid"`
	GroupType       string `gorm:"column:group_type;type:char(10);default:public;not null;comment:群类型，public/private"`
	MemberCnt       int    `gorm:"column:member_cnt;default:1;comment:群人数"`
	LastMessageUuid int64  `gorm:"column:last_message_uuid;type:bigint;comment:最新消息雪花ID"`
}

func (GroupInfo) TableName() string {
	return "group_info"
}
