// Package group 实现群组的业务逻辑
// 不变式：创建者始终是群成员；仅创建者可添加/移除他人，任何成员可自行退出
package group

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"devconnect_server/internal/dao/mysql/repository"
	myredis "devconnect_server/internal/dao/redis"
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/dto/respond"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/enum/group/group_role_enum"
	"devconnect_server/pkg/enum/group/group_type_enum"
	"devconnect_server/pkg/errorx"
	"devconnect_server/pkg/util/random"
)

// groupService 群组业务逻辑实现
type groupService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewGroupService 构造函数，注入所有依赖
func NewGroupService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *groupService {
	return &groupService{
		repos: repos,
		cache: cacheService,
	}
}

// CreateGroup 创建群组
// 成员列表去重并强制包含创建者，群组和成员记录在同一事务中写入
func (g *groupService) CreateGroup(creatorId string, req request.CreateGroupRequest) (*respond.GroupRespond, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "群组名称不能为空")
	}
	if len(req.Members) == 0 {
		return nil, errorx.New(errorx.CodeInvalidParam, "成员列表不能为空")
	}
	groupType := req.GroupType
	if groupType == "" {
		groupType = group_type_enum.Public
	}
	if !group_type_enum.Valid(groupType) {
		return nil, errorx.New(errorx.CodeInvalidParam, "无效的群组类型")
	}

	// 去重并强制包含创建者
	memberSet := make(map[string]struct{}, len(req.Members)+1)
	memberSet[creatorId] = struct{}{}
	memberUuids := []string{creatorId}
	for _, m := range req.Members {
		if _, ok := memberSet[m]; ok {
			continue
		}
		memberSet[m] = struct{}{}
		memberUuids = append(memberUuids, m)
	}

	// 校验所有成员存在
	users, err := g.repos.User.FindByUuids(memberUuids)
	if err != nil {
		zap.L().Error("批量查询群成员用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(users) != len(memberUuids) {
		return nil, errorx.New(errorx.CodeInvalidParam, "成员列表包含不存在的用户")
	}

	group := &model.GroupInfo{
		Uuid:        "G" + random.GetNowAndLenRandomString(11),
		Name:        req.Name,
		Description: req.Description,
		CreatorId:   creatorId,
		GroupType:   groupType,
		MemberCnt:   len(memberUuids),
	}

	members := make([]model.GroupMember, 0, len(memberUuids))
	for _, uuid := range memberUuids {
		role := group_role_enum.MEMBER
		if uuid == creatorId {
			role = group_role_enum.CREATOR
		}
		members = append(members, model.GroupMember{
			GroupUuid: group.Uuid,
			UserUuid:  uuid,
			Role:      role,
		})
	}

	err = g.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Group.Create(group); err != nil {
			return err
		}
		return tx.GroupMember.CreateBatch(members)
	})
	if err != nil {
		zap.L().Error("创建群组失败", zap.String("uuid", group.Uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	g.invalidateGroupCache(group.Uuid, memberUuids)

	return g.buildGroupRespond(group, nil), nil
}

// GetGroupDetail 获取群组详情（含成员列表）
func (g *groupService) GetGroupDetail(groupId string) (*respond.GroupRespond, error) {
	if groupId == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "群组ID不能为空")
	}

	cacheKey := "group_detail_" + groupId
	cachedStr, err := g.cache.Get(context.Background(), cacheKey)
	if err == nil && cachedStr != "" {
		var cached respond.GroupRespond
		if err := json.Unmarshal([]byte(cachedStr), &cached); err == nil {
			return &cached, nil
		}
		zap.L().Warn("群组详情缓存解析失败，回退数据库", zap.String("cacheKey", cacheKey), zap.Error(err))
	}

	group, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("查询群组失败", zap.String("group_uuid", groupId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	members, err := g.repos.GroupMember.FindMembersWithUserInfo(groupId)
	if err != nil {
		zap.L().Error("查询群成员失败", zap.String("group_uuid", groupId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	rsp := g.buildGroupRespond(group, members)

	g.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(rsp)
		if err != nil {
			zap.L().Error("序列化群组详情失败", zap.Error(err))
			return
		}
		if err := g.cache.Set(context.Background(), cacheKey, string(rspBytes), time.Minute*30); err != nil {
			zap.L().Error("写入群组详情缓存失败", zap.Error(err))
		}
	})

	return rsp, nil
}

// AddMembers 添加群成员
// 仅创建者可操作；已在群内的成员被跳过，全部重复时报参数错误
func (g *groupService) AddMembers(groupId, actingUserId string, memberUuids []string) error {
	group, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("查询群组失败", zap.String("group_uuid", groupId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if group.CreatorId != actingUserId {
		return errorx.New(errorx.CodeForbidden, "仅群创建者可以添加成员")
	}

	// 过滤掉已在群内的用户
	newMembers := make([]model.GroupMember, 0, len(memberUuids))
	added := make([]string, 0, len(memberUuids))
	seen := make(map[string]struct{}, len(memberUuids))
	for _, uuid := range memberUuids {
		if _, ok := seen[uuid]; ok {
			continue
		}
		seen[uuid] = struct{}{}
		exists, err := g.repos.GroupMember.Exists(groupId, uuid)
		if err != nil {
			zap.L().Error("查询群成员关系失败", zap.String("user_uuid", uuid), zap.Error(err))
			return errorx.ErrServerBusy
		}
		if exists {
			continue
		}
		newMembers = append(newMembers, model.GroupMember{
			GroupUuid: groupId,
			UserUuid:  uuid,
			Role:      group_role_enum.MEMBER,
		})
		added = append(added, uuid)
	}
	if len(newMembers) == 0 {
		return errorx.New(errorx.CodeInvalidParam, "所有用户均已是群成员")
	}

	// 校验新成员用户存在
	users, err := g.repos.User.FindByUuids(added)
	if err != nil {
		zap.L().Error("批量查询用户失败", zap.Error(err))
		return errorx.ErrServerBusy
	}
	if len(users) != len(added) {
		return errorx.New(errorx.CodeInvalidParam, "成员列表包含不存在的用户")
	}

	err = g.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.GroupMember.CreateBatch(newMembers); err != nil {
			return err
		}
		return tx.Group.IncrementMemberCountBy(groupId, len(newMembers))
	})
	if err != nil {
		zap.L().Error("添加群成员失败", zap.String("group_uuid", groupId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateGroupCache(groupId, added)
	return nil
}

// RemoveMember 移除群成员
// 创建者可移除任何成员（含自己），普通成员仅可移除自己
func (g *groupService) RemoveMember(groupId, actingUserId, targetUserId string) error {
	group, err := g.repos.Group.FindByUuid(groupId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "群组不存在")
		}
		zap.L().Error("查询群组失败", zap.String("group_uuid", groupId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	if actingUserId != group.CreatorId && actingUserId != targetUserId {
		return errorx.New(errorx.CodeForbidden, "仅群创建者可以移除其他成员")
	}

	exists, err := g.repos.GroupMember.Exists(groupId, targetUserId)
	if err != nil {
		zap.L().Error("查询群成员关系失败", zap.String("user_uuid", targetUserId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if !exists {
		return errorx.New(errorx.CodeNotFound, "该用户不是群成员")
	}

	err = g.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.GroupMember.Delete(groupId, targetUserId); err != nil {
			return err
		}
		return tx.Group.DecrementMemberCountBy(groupId, 1)
	})
	if err != nil {
		zap.L().Error("移除群成员失败", zap.String("group_uuid", groupId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	g.invalidateGroupCache(groupId, []string{targetUserId})
	return nil
}

// invalidateGroupCache 异步失效群组详情和相关用户的会话列表缓存
func (g *groupService) invalidateGroupCache(groupId string, userUuids []string) {
	g.cache.SubmitTask(func() {
		if err := g.cache.Delete(context.Background(), "group_detail_"+groupId); err != nil {
			zap.L().Error(err.Error())
		}
		for _, uuid := range userUuids {
			if err := g.cache.Delete(context.Background(), "chat_list_"+uuid); err != nil {
				zap.L().Error(err.Error())
			}
		}
	})
}

// buildGroupRespond 组装群组响应
func (g *groupService) buildGroupRespond(group *model.GroupInfo, members []repository.GroupMemberWithUserInfo) *respond.GroupRespond {
	rsp := &respond.GroupRespond{
		Uuid:        group.Uuid,
		Name:        group.Name,
		Description: group.Description,
		CreatorId:   group.CreatorId,
		GroupType:   group.GroupType,
		MemberCnt:   group.MemberCnt,
		CreatedAt:   group.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   group.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, m := range members {
		rsp.Members = append(rsp.Members, respond.GroupMemberRespond{
			UserId:   m.UserId,
			Nickname: m.Nickname,
			Avatar:   m.Avatar,
			Role:     m.Role,
		})
	}
	return rsp
}
