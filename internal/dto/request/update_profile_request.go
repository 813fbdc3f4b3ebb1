package request

// UpdateProfileRequest 更新个人资料请求
// 所有字段均可选，仅更新提交的字段
// 使用位置:
//   - handler/user_handler.go: UserHandler.UpdateMe
type UpdateProfileRequest struct {
	Nickname string `json:"nickname"`
	Role     string `json:"role" binding:"omitempty,oneof=developer designer manager recruiter"`
	Headline string `json:"headline" binding:"omitempty,max=100"`
	Location string `json:"location" binding:"omitempty,max=100"`
	Avatar   string `json:"avatar"`
}
