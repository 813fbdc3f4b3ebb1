package profile

import (
	"errors"
	"testing"

	"devconnect_server/internal/dao/mysql/repository"
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/errorx"
)

// ==================== 内存实现 ====================

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*model.UserInfo
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	u, ok := f.users[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
	}
	return u, nil
}

type fakeSkillRepo struct {
	repository.SkillRepository
	skills map[string]*model.Skill
}

func (f *fakeSkillRepo) FindByUuid(uuid string) (*model.Skill, error) {
	s, ok := f.skills[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "技能不存在")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSkillRepo) FindByUser(userUuid string) ([]model.Skill, error) {
	var result []model.Skill
	for _, s := range f.skills {
		if s.UserUuid == userUuid {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (f *fakeSkillRepo) Create(skill *model.Skill) error {
	cp := *skill
	f.skills[skill.Uuid] = &cp
	return nil
}

func (f *fakeSkillRepo) Update(skill *model.Skill) error {
	cp := *skill
	f.skills[skill.Uuid] = &cp
	return nil
}

func (f *fakeSkillRepo) Delete(uuid string) error {
	delete(f.skills, uuid)
	return nil
}

type fakeProjectRepo struct {
	repository.ProjectRepository
	projects map[string]*model.Project
}

func (f *fakeProjectRepo) FindByUuid(uuid string) (*model.Project, error) {
	p, ok := f.projects[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "项目不存在")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProjectRepo) FindByUser(userUuid string) ([]model.Project, error) {
	var result []model.Project
	for _, p := range f.projects {
		if p.UserUuid == userUuid {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakeProjectRepo) Create(project *model.Project) error {
	cp := *project
	f.projects[project.Uuid] = &cp
	return nil
}

func (f *fakeProjectRepo) Update(project *model.Project) error {
	cp := *project
	f.projects[project.Uuid] = &cp
	return nil
}

func (f *fakeProjectRepo) Delete(uuid string) error {
	delete(f.projects, uuid)
	return nil
}

func newProfileFixture(userIds ...string) *profileService {
	users := make(map[string]*model.UserInfo, len(userIds))
	for _, id := range userIds {
		users[id] = &model.UserInfo{Uuid: id, Nickname: "user-" + id, Email: id + "@dev.io"}
	}
	repos := &repository.Repositories{
		User:    &fakeUserRepo{users: users},
		Skill:   &fakeSkillRepo{skills: make(map[string]*model.Skill)},
		Project: &fakeProjectRepo{projects: make(map[string]*model.Project)},
	}
	return NewProfileService(repos)
}

func assertCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	var codeErr *errorx.CodeError
	if !errors.As(err, &codeErr) {
		t.Fatalf("expected CodeError, got %v", err)
	}
	if codeErr.Code != wantCode {
		t.Fatalf("expected code %d, got %d (%s)", wantCode, codeErr.Code, codeErr.Msg)
	}
}

// ==================== 测试用例 ====================

func TestSkillOwnership(t *testing.T) {
	svc := newProfileFixture("U1", "U2")

	created, err := svc.CreateSkill("U1", request.SaveSkillRequest{Name: "Go", Level: "expert"})
	if err != nil {
		t.Fatalf("create skill failed: %v", err)
	}
	if created.Uuid == "" || created.Uuid[0] != 'K' {
		t.Fatalf("unexpected skill uuid: %s", created.Uuid)
	}

	// 非所有者更新/删除被拒绝
	_, err = svc.UpdateSkill("U2", created.Uuid, request.SaveSkillRequest{Name: "Rust", Level: "beginner"})
	assertCode(t, err, errorx.CodeForbidden)
	assertCode(t, svc.DeleteSkill("U2", created.Uuid), errorx.CodeForbidden)

	updated, err := svc.UpdateSkill("U1", created.Uuid, request.SaveSkillRequest{Name: "Go", Level: "intermediate"})
	if err != nil {
		t.Fatalf("update skill failed: %v", err)
	}
	if updated.Level != "intermediate" {
		t.Fatalf("expected level update, got %s", updated.Level)
	}

	if err := svc.DeleteSkill("U1", created.Uuid); err != nil {
		t.Fatalf("delete skill failed: %v", err)
	}
	_, err = svc.UpdateSkill("U1", created.Uuid, request.SaveSkillRequest{Name: "Go", Level: "expert"})
	assertCode(t, err, errorx.CodeNotFound)
}

func TestProjectOwnership(t *testing.T) {
	svc := newProfileFixture("U1", "U2")

	created, err := svc.CreateProject("U1", request.SaveProjectRequest{
		Title:   "devconnect",
		RepoUrl: "https://github.com/dev/devconnect",
	})
	if err != nil {
		t.Fatalf("create project failed: %v", err)
	}
	if created.Uuid == "" || created.Uuid[0] != 'P' {
		t.Fatalf("unexpected project uuid: %s", created.Uuid)
	}

	_, err = svc.UpdateProject("U2", created.Uuid, request.SaveProjectRequest{Title: "x"})
	assertCode(t, err, errorx.CodeForbidden)
	assertCode(t, svc.DeleteProject("U2", created.Uuid), errorx.CodeForbidden)

	if err := svc.DeleteProject("U1", created.Uuid); err != nil {
		t.Fatalf("delete project failed: %v", err)
	}
	assertCode(t, svc.DeleteProject("U1", created.Uuid), errorx.CodeNotFound)
}

func TestGetProfileAggregates(t *testing.T) {
	svc := newProfileFixture("U1")

	if _, err := svc.CreateSkill("U1", request.SaveSkillRequest{Name: "Go", Level: "expert"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateProject("U1", request.SaveProjectRequest{Title: "devconnect"}); err != nil {
		t.Fatal(err)
	}

	profile, err := svc.GetProfile("U1")
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if profile.User.Uuid != "U1" || len(profile.Skills) != 1 || len(profile.Projects) != 1 {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	_, err = svc.GetProfile("U_missing")
	assertCode(t, err, errorx.CodeUserNotExist)
}
