// Package group_type_enum 定义群组类型枚举
package group_type_enum

const (
	Public  = "public"  // 公开群组
	Private = "private" // 私有群组
)

// Valid 判断群组类型是否合法
func Valid(t string) bool {
	return t == Public || t == Private
}
