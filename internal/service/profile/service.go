// Package profile 实现个人主页的业务逻辑
// 技能和项目条目归属于单个用户，仅所有者可修改
package profile

import (
	"go.uber.org/zap"

	"devconnect_server/internal/dao/mysql/repository"
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/dto/respond"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/errorx"
	"devconnect_server/pkg/util/random"
)

// profileService 个人主页业务逻辑实现
type profileService struct {
	repos *repository.Repositories
}

// NewProfileService 构造函数
func NewProfileService(repos *repository.Repositories) *profileService {
	return &profileService{repos: repos}
}

// GetProfile 获取个人主页，聚合用户资料、技能和项目
func (p *profileService) GetProfile(userId string) (*respond.ProfileRespond, error) {
	user, err := p.repos.User.FindByUuid(userId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "该用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("uuid", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	skills, err := p.ListSkills(userId)
	if err != nil {
		return nil, err
	}
	projects, err := p.ListProjects(userId)
	if err != nil {
		return nil, err
	}

	rsp := &respond.ProfileRespond{
		User: respond.UserInfoRespond{
			Uuid:      user.Uuid,
			Nickname:  user.Nickname,
			Email:     user.Email,
			Role:      user.Role,
			Headline:  user.Headline,
			Location:  user.Location,
			Avatar:    user.Avatar,
			CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
			IsAdmin:   user.IsAdmin == 1,
			Status:    user.Status,
		},
		Skills:   skills,
		Projects: projects,
	}
	if user.LastOnlineAt.Valid {
		rsp.User.LastOnlineAt = user.LastOnlineAt.Time.Format("2006-01-02 15:04:05")
	}
	return rsp, nil
}

// ListSkills 获取用户技能列表
func (p *profileService) ListSkills(userId string) ([]respond.SkillRespond, error) {
	skills, err := p.repos.Skill.FindByUser(userId)
	if err != nil {
		zap.L().Error("查询用户技能失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	result := make([]respond.SkillRespond, 0, len(skills))
	for _, s := range skills {
		result = append(result, respond.SkillRespond{
			Uuid:  s.Uuid,
			Name:  s.Name,
			Level: s.Level,
		})
	}
	return result, nil
}

// CreateSkill 创建技能条目
func (p *profileService) CreateSkill(userId string, req request.SaveSkillRequest) (*respond.SkillRespond, error) {
	skill := &model.Skill{
		Uuid:     "K" + random.GetNowAndLenRandomString(11),
		UserUuid: userId,
		Name:     req.Name,
		Level:    req.Level,
	}
	if err := p.repos.Skill.Create(skill); err != nil {
		zap.L().Error("创建技能失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.SkillRespond{Uuid: skill.Uuid, Name: skill.Name, Level: skill.Level}, nil
}

// UpdateSkill 更新技能条目，仅所有者可操作
func (p *profileService) UpdateSkill(userId, skillUuid string, req request.SaveSkillRequest) (*respond.SkillRespond, error) {
	skill, err := p.findOwnedSkill(userId, skillUuid)
	if err != nil {
		return nil, err
	}

	skill.Name = req.Name
	skill.Level = req.Level
	if err := p.repos.Skill.Update(skill); err != nil {
		zap.L().Error("更新技能失败", zap.String("uuid", skillUuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.SkillRespond{Uuid: skill.Uuid, Name: skill.Name, Level: skill.Level}, nil
}

// DeleteSkill 删除技能条目，仅所有者可操作
func (p *profileService) DeleteSkill(userId, skillUuid string) error {
	if _, err := p.findOwnedSkill(userId, skillUuid); err != nil {
		return err
	}
	if err := p.repos.Skill.Delete(skillUuid); err != nil {
		zap.L().Error("删除技能失败", zap.String("uuid", skillUuid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// ListProjects 获取用户项目列表
func (p *profileService) ListProjects(userId string) ([]respond.ProjectRespond, error) {
	projects, err := p.repos.Project.FindByUser(userId)
	if err != nil {
		zap.L().Error("查询用户项目失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	result := make([]respond.ProjectRespond, 0, len(projects))
	for _, pj := range projects {
		result = append(result, respond.ProjectRespond{
			Uuid:        pj.Uuid,
			Title:       pj.Title,
			Description: pj.Description,
			RepoUrl:     pj.RepoUrl,
		})
	}
	return result, nil
}

// CreateProject 创建项目条目
func (p *profileService) CreateProject(userId string, req request.SaveProjectRequest) (*respond.ProjectRespond, error) {
	project := &model.Project{
		Uuid:        "P" + random.GetNowAndLenRandomString(11),
		UserUuid:    userId,
		Title:       req.Title,
		Description: req.Description,
		RepoUrl:     req.RepoUrl,
	}
	if err := p.repos.Project.Create(project); err != nil {
		zap.L().Error("创建项目失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.ProjectRespond{
		Uuid:        project.Uuid,
		Title:       project.Title,
		Description: project.Description,
		RepoUrl:     project.RepoUrl,
	}, nil
}

// UpdateProject 更新项目条目，仅所有者可操作
func (p *profileService) UpdateProject(userId, projectUuid string, req request.SaveProjectRequest) (*respond.ProjectRespond, error) {
	project, err := p.findOwnedProject(userId, projectUuid)
	if err != nil {
		return nil, err
	}

	project.Title = req.Title
	project.Description = req.Description
	project.RepoUrl = req.RepoUrl
	if err := p.repos.Project.Update(project); err != nil {
		zap.L().Error("更新项目失败", zap.String("uuid", projectUuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return &respond.ProjectRespond{
		Uuid:        project.Uuid,
		Title:       project.Title,
		Description: project.Description,
		RepoUrl:     project.RepoUrl,
	}, nil
}

// DeleteProject 删除项目条目，仅所有者可操作
func (p *profileService) DeleteProject(userId, projectUuid string) error {
	if _, err := p.findOwnedProject(userId, projectUuid); err != nil {
		return err
	}
	if err := p.repos.Project.Delete(projectUuid); err != nil {
		zap.L().Error("删除项目失败", zap.String("uuid", projectUuid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// findOwnedSkill 查找技能并校验归属
func (p *profileService) findOwnedSkill(userId, skillUuid string) (*model.Skill, error) {
	skill, err := p.repos.Skill.FindByUuid(skillUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "技能条目不存在")
		}
		zap.L().Error("查询技能失败", zap.String("uuid", skillUuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if skill.UserUuid != userId {
		return nil, errorx.New(errorx.CodeForbidden, "无权操作他人的技能条目")
	}
	return skill, nil
}

// findOwnedProject 查找项目并校验归属
func (p *profileService) findOwnedProject(userId, projectUuid string) (*model.Project, error) {
	project, err := p.repos.Project.FindByUuid(projectUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "项目条目不存在")
		}
		zap.L().Error("查询项目失败", zap.String("uuid", projectUuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if project.UserUuid != userId {
		return nil, errorx.New(errorx.CodeForbidden, "无权操作他人的项目条目")
	}
	return project, nil
}
