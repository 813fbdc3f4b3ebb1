// Package connection_status_enum 定义连接请求状态枚举
package connection_status_enum

// 连接请求状态
const (
	PENDING  int8 = iota // 0 申请中
	ACCEPTED             // 1 已接受
	REJECTED             // 2 已拒绝
)

// NONE 表示两个用户之间不存在连接记录，仅用于状态查询响应
const NONE int8 = -1

// String 返回状态对外展示用的字符串
func String(status int8) string {
	switch status {
	case PENDING:
		return "pending"
	case ACCEPTED:
		return "accepted"
	case REJECTED:
		return "rejected"
	default:
		return "none"
	}
}
