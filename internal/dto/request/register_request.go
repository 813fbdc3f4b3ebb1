package request

// RegisterRequest 用户注册请求
// 使用位置:
//   - handler/auth_handler.go: AuthHandler.Register
//   - internal/service/user/service.go: Register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname" binding:"required"`
	// Role 职业标签，可选值 developer/designer/manager/recruiter
	Role string `json:"role" binding:"omitempty,oneof=developer designer manager recruiter"`
}
