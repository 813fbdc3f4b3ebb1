package request

// SendConnectionRequest 发起连接申请请求
// 使用位置:
//   - handler/connection_handler.go: ConnectionHandler.SendRequest
type SendConnectionRequest struct {
	RecipientId string `json:"recipientId" binding:"required"`
}
