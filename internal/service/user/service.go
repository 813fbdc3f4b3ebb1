// Package user 实现用户的业务逻辑
// 处理注册、登录、令牌刷新、资料管理和管理员批量操作
package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"devconnect_server/internal/dao/mysql/repository"
	myredis "devconnect_server/internal/dao/redis"
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/dto/respond"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/constants"
	"devconnect_server/pkg/enum/user/user_status_enum"
	"devconnect_server/pkg/errorx"
	"devconnect_server/pkg/util/jwt"
	"devconnect_server/pkg/util/random"
)

// userService 用户业务逻辑实现
// 通过构造函数注入 Repository 和 Cache 依赖
type userService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewUserService 构造函数，注入所有依赖
func NewUserService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *userService {
	return &userService{
		repos: repos,
		cache: cacheService,
	}
}

// Register 邮箱注册
// 邮箱全局唯一，明文密码经 BeforeSave 钩子 bcrypt 加密后入库
func (u *userService) Register(req request.RegisterRequest) (*respond.LoginRespond, error) {
	if !model.ValidRole(req.Role) {
		return nil, errorx.New(errorx.CodeInvalidParam, "无效的角色标签")
	}

	_, err := u.repos.User.FindByEmail(req.Email)
	if err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "该邮箱已注册")
	}
	if !errorx.IsNotFound(err) {
		zap.L().Error("查询邮箱失败", zap.String("email", req.Email), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	user := &model.UserInfo{
		Uuid:        "U" + random.GetNowAndLenRandomString(11),
		Email:       req.Email,
		Nickname:    req.Nickname,
		Role:        req.Role,
		RawPassword: req.Password,
		Status:      user_status_enum.NORMAL,
	}
	if err := u.repos.User.Create(user); err != nil {
		zap.L().Error("创建用户失败", zap.String("email", req.Email), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	return u.issueTokens(user)
}

// Login 密码登录
// 账号不存在和密码错误返回同样的提示，避免探测注册邮箱
func (u *userService) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := u.repos.User.FindByEmail(req.Email)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeInvalidPassword, "邮箱或密码错误")
		}
		zap.L().Error("查询用户失败", zap.String("email", req.Email), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "邮箱或密码错误")
	}
	if user.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeForbidden, "该账号已被禁用")
	}

	if err := u.repos.User.UpdateLastOnline(user.Uuid); err != nil {
		// 上线时间刷新失败不影响登录
		zap.L().Warn("更新最后在线时间失败", zap.String("uuid", user.Uuid), zap.Error(err))
	}

	return u.issueTokens(user)
}

// RefreshToken 刷新令牌对
// 校验 Refresh Token 的合法性和 TokenID 是否为当前有效值（互踢机制），
// 通过后轮换出新的令牌对
func (u *userService) RefreshToken(refreshToken string) (*respond.TokenRespond, error) {
	claims, err := jwt.ParseToken(refreshToken)
	if err != nil || claims.Subject != "refresh_token" {
		return nil, errorx.New(errorx.CodeUnauthorized, "无效的刷新令牌")
	}

	redisKey := "user_token:" + claims.UserID
	validTokenID, err := u.cache.Get(context.Background(), redisKey)
	if err != nil {
		zap.L().Error("查询刷新令牌缓存失败", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if validTokenID == "" || validTokenID != claims.TokenID {
		return nil, errorx.New(errorx.CodeUnauthorized, "刷新令牌已失效")
	}

	user, err := u.repos.User.FindByUuid(claims.UserID)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUnauthorized, "用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("uuid", claims.UserID), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if user.Status == user_status_enum.DISABLE {
		return nil, errorx.New(errorx.CodeForbidden, "该账号已被禁用")
	}

	accessToken, err := jwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成访问令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	newRefreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成刷新令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	u.storeTokenID(user.Uuid, tokenID)

	return &respond.TokenRespond{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// GetUserInfo 获取单个用户信息
func (u *userService) GetUserInfo(uuid string) (*respond.UserInfoRespond, error) {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "该用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("uuid", uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	return buildUserInfoRespond(user), nil
}

// GetUserList 获取用户列表（排除指定用户，只含正常状态）
func (u *userService) GetUserList(ownerId string) ([]respond.UserSummaryRespond, error) {
	users, err := u.repos.User.FindAllExcept(ownerId)
	if err != nil {
		zap.L().Error("查询用户列表失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	result := make([]respond.UserSummaryRespond, 0, len(users))
	for _, user := range users {
		result = append(result, respond.UserSummaryRespond{
			Uuid:     user.Uuid,
			Nickname: user.Nickname,
			Role:     user.Role,
			Headline: user.Headline,
			Avatar:   user.Avatar,
		})
	}
	return result, nil
}

// UpdateProfile 更新个人资料
// 仅更新提交的非空字段，角色标签需属于封闭集合
func (u *userService) UpdateProfile(uuid string, req request.UpdateProfileRequest) (*respond.UserInfoRespond, error) {
	if !model.ValidRole(req.Role) {
		return nil, errorx.New(errorx.CodeInvalidParam, "无效的角色标签")
	}

	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "该用户不存在")
		}
		zap.L().Error("查询用户失败", zap.String("uuid", uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	if req.Headline != "" {
		user.Headline = req.Headline
	}
	if req.Location != "" {
		user.Location = req.Location
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := u.repos.User.Update(user); err != nil {
		zap.L().Error("更新用户失败", zap.String("uuid", uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 资料变更后相关缓存失效
	u.cache.SubmitTask(func() {
		patterns := []string{
			"chat_list_*",
			"connection_discover_*",
		}
		if err := u.cache.DeleteByPatterns(context.Background(), patterns); err != nil {
			zap.L().Error(err.Error())
		}
	})

	return buildUserInfoRespond(user), nil
}

// SetUsersStatus 批量启用/禁用用户（管理员）
func (u *userService) SetUsersStatus(uuidList []string, status int8) error {
	if status != user_status_enum.NORMAL && status != user_status_enum.DISABLE {
		return errorx.New(errorx.CodeInvalidParam, "无效的用户状态")
	}
	if err := u.repos.User.UpdateStatusByUuids(uuidList, status); err != nil {
		zap.L().Error("批量更新用户状态失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	return nil
}

// DeleteUsers 批量注销用户（管理员）
// 软删除用户本体并级联清理连接、群成员、技能和项目记录，
// 历史消息保留，会话聚合对已注销对端有容忍处理
func (u *userService) DeleteUsers(uuidList []string) error {
	if len(uuidList) == 0 {
		return errorx.New(errorx.CodeInvalidParam, "用户列表不能为空")
	}

	err := u.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.User.SoftDeleteByUuids(uuidList); err != nil {
			return err
		}
		if err := tx.Connection.SoftDeleteByUsers(uuidList); err != nil {
			return err
		}
		if err := tx.GroupMember.DeleteByUserUuids(uuidList); err != nil {
			return err
		}
		if err := tx.Skill.DeleteByUsers(uuidList); err != nil {
			return err
		}
		return tx.Project.DeleteByUsers(uuidList)
	})
	if err != nil {
		zap.L().Error("批量注销用户失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	u.cache.SubmitTask(func() {
		for _, uuid := range uuidList {
			patterns := []string{
				"chat_list_" + uuid + "*",
				"connection_discover_" + uuid + "*",
				"user_token:" + uuid,
			}
			if err := u.cache.DeleteByPatterns(context.Background(), patterns); err != nil {
				zap.L().Error(err.Error())
			}
		}
	})

	return nil
}

// issueTokens 签发令牌对并组装登录响应
func (u *userService) issueTokens(user *model.UserInfo) (*respond.LoginRespond, error) {
	accessToken, err := jwt.GenerateAccessToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成访问令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	refreshToken, tokenID, err := jwt.GenerateRefreshToken(user.Uuid)
	if err != nil {
		zap.L().Error("生成刷新令牌失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	u.storeTokenID(user.Uuid, tokenID)

	return &respond.LoginRespond{
		Uuid:         user.Uuid,
		Nickname:     user.Nickname,
		Email:        user.Email,
		Role:         user.Role,
		Avatar:       user.Avatar,
		CreatedAt:    user.CreatedAt.Format("2006-01-02 15:04:05"),
		IsAdmin:      user.IsAdmin == 1,
		Status:       user.Status,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// storeTokenID 记录当前有效的 Refresh TokenID（互踢机制）
// 写入失败仅记录日志，刷新接口会因校验不过而要求重新登录
func (u *userService) storeTokenID(userUuid, tokenID string) {
	err := u.cache.Set(context.Background(), "user_token:"+userUuid, tokenID,
		time.Hour*constants.REFRESH_TOKEN_EXP_HOUR)
	if err != nil {
		zap.L().Error("写入刷新令牌缓存失败", zap.String("uuid", userUuid), zap.Error(err))
	}
}

// buildUserInfoRespond 组装用户信息响应
func buildUserInfoRespond(user *model.UserInfo) *respond.UserInfoRespond {
	rsp := &respond.UserInfoRespond{
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
	}
	if user.LastOnlineAt.Valid {
		rsp.LastOnlineAt = user.LastOnlineAt.Time.Format("2006-01-02 15:04:05")
	}
	return rsp
}
