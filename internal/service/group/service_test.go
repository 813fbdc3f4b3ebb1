package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"devconnect_server/internal/dao/mysql/repository"
	myredis "devconnect_server/internal/dao/redis"
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/enum/group/group_role_enum"
	"devconnect_server/pkg/errorx"
)

// ==================== 内存实现 ====================

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*model.UserInfo
}

func (f *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	result := make([]model.UserInfo, 0, len(uuids))
	for _, id := range uuids {
		if u, ok := f.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

type fakeGroupRepo struct {
	repository.GroupRepository
	groups map[string]*model.GroupInfo
}

func (f *fakeGroupRepo) FindByUuid(uuid string) (*model.GroupInfo, error) {
	g, ok := f.groups[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGroupRepo) Create(group *model.GroupInfo) error {
	cp := *group
	f.groups[group.Uuid] = &cp
	return nil
}

func (f *fakeGroupRepo) IncrementMemberCountBy(uuid string, count int) error {
	g, ok := f.groups[uuid]
	if !ok {
		return errorx.New(errorx.CodeNotFound, "群组不存在")
	}
	g.MemberCnt += count
	return nil
}

func (f *fakeGroupRepo) DecrementMemberCountBy(uuid string, count int) error {
	g, ok := f.groups[uuid]
	if !ok {
		return errorx.New(errorx.CodeNotFound, "群组不存在")
	}
	g.MemberCnt -= count
	return nil
}

type fakeGroupMemberRepo struct {
	repository.GroupMemberRepository
	members []model.GroupMember
}

func (f *fakeGroupMemberRepo) Exists(groupUuid, userUuid string) (bool, error) {
	for _, m := range f.members {
		if m.GroupUuid == groupUuid && m.UserUuid == userUuid {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeGroupMemberRepo) CreateBatch(members []model.GroupMember) error {
	f.members = append(f.members, members...)
	return nil
}

func (f *fakeGroupMemberRepo) Delete(groupUuid, userUuid string) error {
	for i, m := range f.members {
		if m.GroupUuid == groupUuid && m.UserUuid == userUuid {
			f.members = append(f.members[:i], f.members[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeGroupMemberRepo) FindMembersWithUserInfo(groupUuid string) ([]repository.GroupMemberWithUserInfo, error) {
	var result []repository.GroupMemberWithUserInfo
	for _, m := range f.members {
		if m.GroupUuid == groupUuid {
			result = append(result, repository.GroupMemberWithUserInfo{
				UserId: m.UserUuid,
				Role:   m.Role,
			})
		}
	}
	return result, nil
}

type noopCache struct {
	myredis.AsyncCacheService
}

func (noopCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (noopCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, key string) error { return nil }
func (noopCache) SubmitTask(action func())                     { action() }

type groupFixture struct {
	svc     *groupService
	groups  *fakeGroupRepo
	members *fakeGroupMemberRepo
}

func newGroupFixture(userIds ...string) *groupFixture {
	users := make(map[string]*model.UserInfo, len(userIds))
	for _, id := range userIds {
		users[id] = &model.UserInfo{Uuid: id, Nickname: "user-" + id}
	}
	f := &groupFixture{
		groups:  &fakeGroupRepo{groups: make(map[string]*model.GroupInfo)},
		members: &fakeGroupMemberRepo{},
	}
	repos := &repository.Repositories{
		User:        &fakeUserRepo{users: users},
		Group:       f.groups,
		GroupMember: f.members,
	}
	f.svc = NewGroupService(repos, noopCache{})
	return f
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

func TestCreateGroupDedupeAndCreator(t *testing.T) {
	f := newGroupFixture("U1", "U2", "U3")

	// 成员列表含重复项且遗漏创建者
	rsp, err := f.svc.CreateGroup("U1", request.CreateGroupRequest{
		Name:    "go developers",
		Members: []string{"U2", "U2", "U3"},
	})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	if rsp.MemberCnt != 3 {
		t.Fatalf("expected 3 members, got %d", rsp.MemberCnt)
	}
	if rsp.GroupType != "public" {
		t.Fatalf("expected default public type, got %s", rsp.GroupType)
	}
	if rsp.CreatorId != "U1" {
		t.Fatalf("unexpected creator: %s", rsp.CreatorId)
	}

	// 创建者角色为群主，其余为普通成员
	exists, _ := f.members.Exists(rsp.Uuid, "U1")
	if !exists {
		t.Fatal("creator must be a member")
	}
	for _, m := range f.members.members {
		if m.UserUuid == "U1" && m.Role != group_role_enum.CREATOR {
			t.Fatal("creator should have creator role")
		}
		if m.UserUuid != "U1" && m.Role != group_role_enum.MEMBER {
			t.Fatal("non-creator should have member role")
		}
	}
}

func TestCreateGroupValidation(t *testing.T) {
	f := newGroupFixture("U1")

	_, err := f.svc.CreateGroup("U1", request.CreateGroupRequest{
		Name:      "x",
		Members:   []string{"U1"},
		GroupType: "secret",
	})
	assertCode(t, err, errorx.CodeInvalidParam)

	_, err = f.svc.CreateGroup("U1", request.CreateGroupRequest{
		Name:    "x",
		Members: []string{"U_missing"},
	})
	assertCode(t, err, errorx.CodeInvalidParam)

	// 群组名称为空白
	_, err = f.svc.CreateGroup("U1", request.CreateGroupRequest{
		Name:    "   ",
		Members: []string{"U1"},
	})
	assertCode(t, err, errorx.CodeInvalidParam)

	// 成员列表为空不允许创建单人群
	_, err = f.svc.CreateGroup("U1", request.CreateGroupRequest{Name: "x"})
	assertCode(t, err, errorx.CodeInvalidParam)
	_, err = f.svc.CreateGroup("U1", request.CreateGroupRequest{Name: "x", Members: []string{}})
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestAddMembersCreatorOnly(t *testing.T) {
	f := newGroupFixture("U1", "U2", "U3", "U4")
	rsp, err := f.svc.CreateGroup("U1", request.CreateGroupRequest{Name: "g", Members: []string{"U2"}})
	if err != nil {
		t.Fatal(err)
	}

	// 普通成员无权添加
	assertCode(t, f.svc.AddMembers(rsp.Uuid, "U2", []string{"U3"}), errorx.CodeForbidden)

	// 创建者添加，已在群内的 U2 被跳过
	if err := f.svc.AddMembers(rsp.Uuid, "U1", []string{"U2", "U3", "U4"}); err != nil {
		t.Fatalf("add members failed: %v", err)
	}
	g := f.groups.groups[rsp.Uuid]
	if g.MemberCnt != 4 {
		t.Fatalf("expected member count 4, got %d", g.MemberCnt)
	}

	// 全部重复时报参数错误
	assertCode(t, f.svc.AddMembers(rsp.Uuid, "U1", []string{"U2", "U3"}), errorx.CodeInvalidParam)

	// 不存在的用户被拒绝
	assertCode(t, f.svc.AddMembers(rsp.Uuid, "U1", []string{"U_missing"}), errorx.CodeInvalidParam)

	// 群组不存在
	assertCode(t, f.svc.AddMembers("G_missing", "U1", []string{"U3"}), errorx.CodeNotFound)
}

func TestRemoveMemberRules(t *testing.T) {
	f := newGroupFixture("U1", "U2", "U3")
	rsp, err := f.svc.CreateGroup("U1", request.CreateGroupRequest{Name: "g", Members: []string{"U2", "U3"}})
	if err != nil {
		t.Fatal(err)
	}

	// 普通成员不能移除他人
	assertCode(t, f.svc.RemoveMember(rsp.Uuid, "U2", "U3"), errorx.CodeForbidden)

	// 普通成员可以自行退出
	if err := f.svc.RemoveMember(rsp.Uuid, "U2", "U2"); err != nil {
		t.Fatalf("self removal failed: %v", err)
	}
	exists, _ := f.members.Exists(rsp.Uuid, "U2")
	if exists {
		t.Fatal("U2 should be removed")
	}

	// 创建者可以移除任何成员
	if err := f.svc.RemoveMember(rsp.Uuid, "U1", "U3"); err != nil {
		t.Fatalf("creator removal failed: %v", err)
	}

	// 非群成员按未找到处理
	assertCode(t, f.svc.RemoveMember(rsp.Uuid, "U1", "U3"), errorx.CodeNotFound)

	if f.groups.groups[rsp.Uuid].MemberCnt != 1 {
		t.Fatalf("expected member count 1, got %d", f.groups.groups[rsp.Uuid].MemberCnt)
	}
}

func TestGetGroupDetail(t *testing.T) {
	f := newGroupFixture("U1", "U2")
	rsp, err := f.svc.CreateGroup("U1", request.CreateGroupRequest{Name: "g", Members: []string{"U2"}})
	if err != nil {
		t.Fatal(err)
	}

	detail, err := f.svc.GetGroupDetail(rsp.Uuid)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if detail.Name != "g" || len(detail.Members) != 2 {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	_, err = f.svc.GetGroupDetail("G_missing")
	assertCode(t, err, errorx.CodeNotFound)
}
