package model

import "gorm.io/gorm"

// Skill 用户技能条目，属于单个用户
type Skill struct {
	gorm.Model
	Uuid     string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:技能唯一id"`
	UserUuid string `gorm:"column:user_uuid;index;type:char(20);not null;comment:所属用户uuid"`
	Name     string `gorm:"column:name;type:varchar(50);not null;comment:技能名称"`
	Level    string `gorm:"column:level;type:char(20);comment:熟练度，beginner/intermediate/expert"`
}

func (Skill) TableName() string {
	return "skill"
}
