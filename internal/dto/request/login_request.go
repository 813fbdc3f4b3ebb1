package request

// LoginRequest 用户登录请求
// 使用位置:
//   - handler/auth_handler.go: AuthHandler.Login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
