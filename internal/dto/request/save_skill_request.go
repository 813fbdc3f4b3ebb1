package request

// SaveSkillRequest 创建/更新技能请求
// 使用位置:
//   - handler/profile_handler.go: ProfileHandler.CreateSkill, ProfileHandler.UpdateSkill
type SaveSkillRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	// Level 熟练度，可选值 beginner/intermediate/expert
	Level string `json:"level" binding:"omitempty,oneof=beginner intermediate expert"`
}
