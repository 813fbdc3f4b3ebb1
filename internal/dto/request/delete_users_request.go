package request

// DeleteUsersRequest 批量注销用户请求（管理员）
// 使用位置:
//   - handler/user_handler.go: UserHandler.DeleteUsers
type DeleteUsersRequest struct {
	UuidList []string `json:"uuidList" binding:"required,min=1"`
}
