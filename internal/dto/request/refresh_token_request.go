package request

// RefreshTokenRequest 刷新令牌请求
// 使用位置:
//   - handler/auth_handler.go: AuthHandler.RefreshToken
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
