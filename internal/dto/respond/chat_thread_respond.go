package respond

// ChatThreadRespond 会话列表条目
// 单聊条目 ChatId 为对端用户 UUID，群聊条目为群组 UUID
// 使用位置:
//   - internal/service/chat/service.go: ListChats
type ChatThreadRespond struct {
	ChatId string `json:"chatId"`
	// IsGroup 是否群聊会话
	IsGroup bool `json:"isGroup"`
	// Name 单聊为对端昵称，群聊为群名称
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	// LastMessage 最新一条消息，可能为空（群聊尚无消息时）
	LastMessage *MessageRespond `json:"lastMessage"`
	UnreadCount int64           `json:"unreadCount"`
	// LastActivityAt 排序用的最后活跃时间
	LastActivityAt string `json:"lastActivityAt"`
}
