package respond

// LoginRespond 用户登录/注册响应
// 使用位置:
//   - internal/service/user/service.go: Register, Login
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Nickname     string `json:"nickname"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	CreatedAt    string `json:"createdAt"`
	IsAdmin      bool   `json:"isAdmin"`
	Status       int8   `json:"status"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
