package respond

// TokenRespond 令牌刷新响应
// 使用位置:
//   - internal/service/user/service.go: RefreshToken
type TokenRespond struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
