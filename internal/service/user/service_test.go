package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"devconnect_server/internal/dao/mysql/repository"
	myredis "devconnect_server/internal/dao/redis"
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/enum/user/user_status_enum"
	"devconnect_server/pkg/errorx"
	"devconnect_server/pkg/util/jwt"
)

func init() {
	jwt.Init("test-secret-0123456789abcdef0123456789", 30, 168)
}

// ==================== 内存实现 ====================

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*model.UserInfo // Key 为 UUID
}

func (f *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	u, ok := f.users[uuid]
	if !ok {
		return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.UserInfo, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (f *fakeUserRepo) FindAllExcept(excludeUuid string) ([]model.UserInfo, error) {
	result := make([]model.UserInfo, 0, len(f.users))
	for _, u := range f.users {
		if u.Uuid != excludeUuid {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) Create(user *model.UserInfo) error {
	// 模拟 GORM 的 BeforeSave 钩子，加密明文密码
	if err := user.BeforeSave(nil); err != nil {
		return err
	}
	cp := *user
	f.users[user.Uuid] = &cp
	return nil
}

func (f *fakeUserRepo) Update(user *model.UserInfo) error {
	if err := user.BeforeSave(nil); err != nil {
		return err
	}
	cp := *user
	f.users[user.Uuid] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateLastOnline(uuid string) error { return nil }

func (f *fakeUserRepo) UpdateStatusByUuids(uuids []string, status int8) error {
	for _, id := range uuids {
		if u, ok := f.users[id]; ok {
			u.Status = status
		}
	}
	return nil
}

func (f *fakeUserRepo) SoftDeleteByUuids(uuids []string) error {
	for _, id := range uuids {
		delete(f.users, id)
	}
	return nil
}

// fakeCache 内存字符串缓存，异步任务同步执行
type fakeCache struct {
	myredis.AsyncCacheService
	kv map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{kv: make(map[string]string)} }

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return f.kv[key], nil
}
func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.kv[key] = value
	return nil
}
func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.kv, key)
	return nil
}
func (f *fakeCache) DeleteByPatterns(ctx context.Context, patterns []string) error {
	return nil
}
func (f *fakeCache) SubmitTask(action func()) { action() }

// noopRepo 批量清理接口的空实现，级联删除用例会用到
type noopConnRepo struct{ repository.ConnectionRepository }

func (noopConnRepo) SoftDeleteByUsers(userUuids []string) error { return nil }

type noopMemberRepo struct{ repository.GroupMemberRepository }

func (noopMemberRepo) DeleteByUserUuids(userUuids []string) error { return nil }

type noopSkillRepo struct{ repository.SkillRepository }

func (noopSkillRepo) DeleteByUsers(userUuids []string) error { return nil }

type noopProjectRepo struct{ repository.ProjectRepository }

func (noopProjectRepo) DeleteByUsers(userUuids []string) error { return nil }

type userFixture struct {
	svc   *userService
	users *fakeUserRepo
	cache *fakeCache
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users: &fakeUserRepo{users: make(map[string]*model.UserInfo)},
		cache: newFakeCache(),
	}
	repos := &repository.Repositories{
		User:        f.users,
		Connection:  noopConnRepo{},
		GroupMember: noopMemberRepo{},
		Skill:       noopSkillRepo{},
		Project:     noopProjectRepo{},
	}
	f.svc = NewUserService(repos, f.cache)
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

func TestRegisterAndLogin(t *testing.T) {
	f := newUserFixture()

	rsp, err := f.svc.Register(request.RegisterRequest{
		Email:    "dev@devconnect.io",
		Password: "secret123",
		Nickname: "dev",
		Role:     "developer",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rsp.AccessToken == "" || rsp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if rsp.Uuid == "" || rsp.Uuid[0] != 'U' {
		t.Fatalf("unexpected uuid: %s", rsp.Uuid)
	}

	// 密码不以明文入库
	stored := f.users.users[rsp.Uuid]
	if stored.Password == "secret123" || stored.RawPassword != "" {
		t.Fatal("password must be hashed before storage")
	}

	// 重复邮箱注册被拒绝
	_, err = f.svc.Register(request.RegisterRequest{
		Email: "dev@devconnect.io", Password: "another1", Nickname: "x",
	})
	assertCode(t, err, errorx.CodeUserExist)

	// 正确密码登录
	loginRsp, err := f.svc.Login(request.LoginRequest{Email: "dev@devconnect.io", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginRsp.Uuid != rsp.Uuid {
		t.Fatal("uuid mismatch")
	}

	// 账号不存在和密码错误提示一致
	_, err1 := f.svc.Login(request.LoginRequest{Email: "dev@devconnect.io", Password: "wrong"})
	_, err2 := f.svc.Login(request.LoginRequest{Email: "nobody@devconnect.io", Password: "wrong"})
	assertCode(t, err1, errorx.CodeInvalidPassword)
	assertCode(t, err2, errorx.CodeInvalidPassword)
	if err1.Error() != err2.Error() {
		t.Fatal("login errors should not reveal account existence")
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	f := newUserFixture()
	_, err := f.svc.Register(request.RegisterRequest{
		Email: "a@b.io", Password: "secret123", Nickname: "a", Role: "astronaut",
	})
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestLoginDisabledAccount(t *testing.T) {
	f := newUserFixture()
	rsp, err := f.svc.Register(request.RegisterRequest{
		Email: "d@b.io", Password: "secret123", Nickname: "d",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.SetUsersStatus([]string{rsp.Uuid}, user_status_enum.DISABLE); err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.Login(request.LoginRequest{Email: "d@b.io", Password: "secret123"})
	assertCode(t, err, errorx.CodeForbidden)
}

func TestRefreshTokenRotation(t *testing.T) {
	f := newUserFixture()
	rsp, err := f.svc.Register(request.RegisterRequest{
		Email: "r@b.io", Password: "secret123", Nickname: "r",
	})
	if err != nil {
		t.Fatal(err)
	}

	tokens, err := f.svc.RefreshToken(rsp.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("expected new token pair")
	}

	// 旧刷新令牌的 TokenID 已被轮换覆盖，再次使用被拒绝
	_, err = f.svc.RefreshToken(rsp.RefreshToken)
	assertCode(t, err, errorx.CodeUnauthorized)

	// Access Token 不能当作刷新令牌使用
	_, err = f.svc.RefreshToken(tokens.AccessToken)
	assertCode(t, err, errorx.CodeUnauthorized)

	// 新刷新令牌可用
	if _, err := f.svc.RefreshToken(tokens.RefreshToken); err != nil {
		t.Fatalf("new refresh token should work: %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	f := newUserFixture()
	rsp, err := f.svc.Register(request.RegisterRequest{
		Email: "p@b.io", Password: "secret123", Nickname: "before", Role: "developer",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := f.svc.UpdateProfile(rsp.Uuid, request.UpdateProfileRequest{
		Headline: "builds backends",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	// 未提交的字段保持原值
	if updated.Nickname != "before" || updated.Role != "developer" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if updated.Headline != "builds backends" {
		t.Fatalf("headline not updated: %s", updated.Headline)
	}

	_, err = f.svc.UpdateProfile(rsp.Uuid, request.UpdateProfileRequest{Role: "astronaut"})
	assertCode(t, err, errorx.CodeInvalidParam)
}

func TestDeleteUsersCascade(t *testing.T) {
	f := newUserFixture()
	rsp, err := f.svc.Register(request.RegisterRequest{
		Email: "gone@b.io", Password: "secret123", Nickname: "gone",
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.svc.DeleteUsers([]string{rsp.Uuid}); err != nil {
		t.Fatalf("delete users failed: %v", err)
	}
	_, err = f.svc.GetUserInfo(rsp.Uuid)
	assertCode(t, err, errorx.CodeUserNotExist)

	assertCode(t, f.svc.DeleteUsers(nil), errorx.CodeInvalidParam)
}
