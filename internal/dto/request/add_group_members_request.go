package request

// AddGroupMembersRequest 添加群成员请求
// 使用位置:
//   - handler/group_handler.go: GroupHandler.AddMembers
type AddGroupMembersRequest struct {
	Members []string `json:"members" binding:"required,min=1"`
}
