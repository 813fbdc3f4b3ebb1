package respond

// MessageRespond 消息响应
// 使用位置:
//   - internal/service/chat/service.go: GetMessages, SendMessage
type MessageRespond struct {
	Uuid      int64               `json:"uuid,string"`
	Sender    *UserSummaryRespond `json:"sender,omitempty"`
	Recipient *UserSummaryRespond `json:"recipient,omitempty"`
	GroupId   string              `json:"groupId,omitempty"`
	IsGroup   bool                `json:"isGroup"`
	Content   string              `json:"content"`
	Type      string              `json:"type"`
	Url       string              `json:"url,omitempty"`
	Read      bool                `json:"read"`
	CreatedAt string              `json:"createdAt"`
}
