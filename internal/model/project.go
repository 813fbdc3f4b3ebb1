package model

import "gorm.io/gorm"

// Project 用户项目条目，属于单个用户
type Project struct {
	gorm.Model
	Uuid        string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:项目唯一id"`
	UserUuid    string `gorm:"column:user_uuid;index;type:char(20);not null;comment:所属用户uuid"`
	Title       string `gorm:"column:title;type:varchar(100);not null;comment:项目标题"`
	Description string `gorm:"column:description;type:varchar(1000);comment:项目描述"`
	RepoUrl     string `gorm:"column:repo_url;type:varchar(255);comment:仓库链接"`
}

func (Project) TableName() string {
	return "project"
}
