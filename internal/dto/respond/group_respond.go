package respond

// GroupRespond 群组详情响应
// 使用位置:
//   - internal/service/group/service.go: CreateGroup, GetGroupDetail
type GroupRespond struct {
	Uuid        string              `json:"uuid"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CreatorId   string              `json:"creatorId"`
	GroupType   string              `json:"groupType"`
	MemberCnt   int                 `json:"memberCnt"`
	Members     []GroupMemberRespond `json:"members,omitempty"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
}

// GroupMemberRespond 群成员条目响应
type GroupMemberRespond struct {
	UserId   string `json:"userId"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Role     int8   `json:"role"`
}
