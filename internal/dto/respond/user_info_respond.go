package respond

// UserInfoRespond 用户完整资料响应
// 使用位置:
//   - internal/service/user/service.go: GetUserInfo
type UserInfoRespond struct {
	Uuid         string `json:"uuid"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Headline     string `json:"headline"`
	Location     string `json:"location"`
	Avatar       string `json:"avatar"`
	LastOnlineAt string `json:"lastOnlineAt"`
	CreatedAt    string `json:"createdAt"`
	IsAdmin      bool   `json:"isAdmin"`
	Status       int8   `json:"status"`
}
