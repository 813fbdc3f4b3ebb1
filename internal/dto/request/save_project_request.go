package request

// SaveProjectRequest 创建/更新项目请求
// 使用位置:
//   - handler/profile_handler.go: ProfileHandler.CreateProject, ProfileHandler.UpdateProject
type SaveProjectRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	RepoUrl     string `json:"repoUrl" binding:"omitempty,max=255"`
}
