package request

// SendMessageRequest 发送消息请求
// Recipient 与 GroupId 二选一，由 IsGroup 决定
// 使用位置:
//   - handler/message_handler.go: MessageHandler.SendMessage
type SendMessageRequest struct {
	Recipient   string `json:"recipient"`
	GroupId     string `json:"groupId"`
	Content     string `json:"content"`
	IsGroup     bool   `json:"isGroup"`
	MessageType string `json:"messageType" binding:"omitempty,oneof=text image file"`
	Url         string `json:"url"`
}
