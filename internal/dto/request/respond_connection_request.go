package request

// RespondConnectionRequest 处理连接申请请求
// 使用位置:
//   - handler/connection_handler.go: ConnectionHandler.Respond
type RespondConnectionRequest struct {
	// Action 处理动作，accept 接受 / reject 拒绝
	Action string `json:"action" binding:"required,oneof=accept reject"`
}
