package respond

// ConnectionStatsRespond 连接统计响应
// AvailableUsers 为推导值，按 总数-已连接-待处理 计算并在零处截断
// 使用位置:
//   - internal/service/connection/service.go: Stats
type ConnectionStatsRespond struct {
	Accepted        int64 `json:"accepted"`
	PendingReceived int64 `json:"pendingReceived"`
	PendingSent     int64 `json:"pendingSent"`
	AvailableUsers  int64 `json:"availableUsers"`
}
