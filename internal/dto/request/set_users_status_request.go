package request

// SetUsersStatusRequest 批量设置用户状态请求（管理员）
// 使用位置:
//   - handler/user_handler.go: UserHandler.SetUsersStatus
type SetUsersStatusRequest struct {
	UuidList []string `json:"uuidList" binding:"required,min=1"`
	// Status 0 正常，1 禁用
	Status int8 `json:"status" binding:"oneof=0 1"`
}
