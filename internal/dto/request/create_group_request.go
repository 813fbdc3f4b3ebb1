package request

// CreateGroupRequest 创建群组请求
// 使用位置:
//   - handler/group_handler.go: GroupHandler.CreateGroup
type CreateGroupRequest struct {
	Name        string   `json:"name" binding:"required,max=30"`
	Description string   `json:"description" binding:"omitempty,max=500"`
	Members     []string `json:"members" binding:"required,min=1"`
	GroupType   string   `json:"groupType" binding:"omitempty,oneof=public private"`
}
