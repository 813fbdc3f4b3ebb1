package respond

// ConnectionStatusRespond 两个用户之间的连接状态响应
// Status 取值 pending/accepted/rejected/none
// 使用位置:
//   - internal/service/connection/service.go: Status
type ConnectionStatusRespond struct {
	Status         string `json:"status"`
	ConnectionId   string `json:"connectionId,omitempty"`
	IsSentByMe     bool   `json:"isSentByMe"`
	CanSendRequest bool   `json:"canSendRequest"`
}
