package respond

// ProfileRespond 个人主页响应，聚合用户资料、技能与项目
// 使用位置:
//   - internal/service/profile/service.go: GetProfile
type ProfileRespond struct {
	User     UserInfoRespond  `json:"user"`
	Skills   []SkillRespond   `json:"skills"`
	Projects []ProjectRespond `json:"projects"`
}

// SkillRespond 技能条目响应
type SkillRespond struct {
	Uuid  string `json:"uuid"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

// ProjectRespond 项目条目响应
type ProjectRespond struct {
	Uuid        string `json:"uuid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	RepoUrl     string `json:"repoUrl"`
}
