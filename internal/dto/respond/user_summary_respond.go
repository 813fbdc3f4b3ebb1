package respond

// UserSummaryRespond 用户摘要信息
// 用于连接列表、发现列表、会话列表等需要嵌入用户信息的场景
type UserSummaryRespond struct {
	Uuid     string `json:"uuid"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
	Headline string `json:"headline"`
	Avatar   string `json:"avatar"`
}
