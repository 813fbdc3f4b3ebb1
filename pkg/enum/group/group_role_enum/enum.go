// Package group_role_enum 定义群成员角色枚举
package group_role_enum

const (
	MEMBER  int8 = 1 // 普通成员
	CREATOR int8 = 3 // 群主（创建者）
)
