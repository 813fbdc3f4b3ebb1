// Package connection 实现连接请求的业务逻辑
// 状态机：申请中 -> 已接受 / 已拒绝，删除后允许重新申请
// 一对用户之间无论方向最多只存在一条连接记录
package connection

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"devconnect_server/internal/dao/mysql/repository"
	myredis "devconnect_server/internal/dao/redis"
	"devconnect_server/internal/dto/respond"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/constants"
	"devconnect_server/pkg/enum/connection/connection_status_enum"
	"devconnect_server/pkg/errorx"
	"devconnect_server/pkg/util/random"
)

// connectionService 连接业务逻辑实现
// 通过构造函数注入 Repository 和 Cache 依赖
type connectionService struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewConnectionService 构造函数，注入所有依赖
func NewConnectionService(repos *repository.Repositories, cacheService myredis.AsyncCacheService) *connectionService {
	return &connectionService{
		repos: repos,
		cache: cacheService,
	}
}

// Request 发起连接申请
// 校验顺序：参数 -> 接收方存在 -> 无既有连接（任意方向任意状态）
func (c *connectionService) Request(requesterId, recipientId string) (*respond.ConnectionRespond, error) {
	if recipientId == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "接收方ID不能为空")
	}
	if recipientId == requesterId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能向自己发起连接申请")
	}

	recipient, err := c.repos.User.FindByUuid(recipientId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "接收方用户不存在")
		}
		zap.L().Error("查询接收方用户失败", zap.String("recipient_id", recipientId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	requester, err := c.repos.User.FindByUuid(requesterId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "发起方用户不存在")
		}
		zap.L().Error("查询发起方用户失败", zap.String("requester_id", requesterId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 检查两个方向上是否已存在连接
	// 存在性检查和插入不在同一事务中，并发重复申请存在竞态，依赖上层幂等处理
	existing, err := c.repos.Connection.FindBetween(requesterId, recipientId)
	if err != nil && !errorx.IsNotFound(err) {
		zap.L().Error("查询既有连接失败",
			zap.String("requester_id", requesterId),
			zap.String("recipient_id", recipientId),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}
	if existing != nil {
		// 规则统一：一对用户只允许一条记录，提示语区分状态便于调用方理解
		switch existing.Status {
		case connection_status_enum.ACCEPTED:
			return nil, errorx.New(errorx.CodeConflict, "你们已经建立连接")
		case connection_status_enum.REJECTED:
			return nil, errorx.New(errorx.CodeConflict, "该申请此前已被拒绝")
		default:
			return nil, errorx.New(errorx.CodeConflict, "已存在待处理的连接申请")
		}
	}

	conn := &model.Connection{
		Uuid:        "C" + random.GetNowAndLenRandomString(11),
		RequesterId: requesterId,
		RecipientId: recipientId,
		Status:      connection_status_enum.PENDING,
	}
	if err := c.repos.Connection.Create(conn); err != nil {
		zap.L().Error("创建连接失败", zap.String("uuid", conn.Uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 双方的发现列表和统计缓存已失效
	c.invalidatePairCache(requesterId, recipientId)

	return buildConnectionRespond(conn, requester, recipient), nil
}

// Respond 处理连接申请
// 仅当连接存在、操作人为接收方且状态为申请中时放行，其余一律按未找到处理
func (c *connectionService) Respond(connectionId, actingUserId, action string) (*respond.ConnectionRespond, error) {
	if action != "accept" && action != "reject" {
		return nil, errorx.New(errorx.CodeInvalidParam, "无效的处理动作")
	}

	conn, err := c.repos.Connection.FindByUuid(connectionId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeNotFound, "连接申请不存在")
		}
		zap.L().Error("查询连接失败", zap.String("connection_id", connectionId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if conn.RecipientId != actingUserId || conn.Status != connection_status_enum.PENDING {
		// 不泄露连接归属信息，与不存在同样响应
		return nil, errorx.New(errorx.CodeNotFound, "连接申请不存在")
	}

	if action == "accept" {
		conn.Status = connection_status_enum.ACCEPTED
	} else {
		conn.Status = connection_status_enum.REJECTED
	}
	if err := c.repos.Connection.Update(conn); err != nil {
		zap.L().Error("更新连接状态失败", zap.String("connection_id", connectionId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	c.invalidatePairCache(conn.RequesterId, conn.RecipientId)

	users, err := c.repos.User.FindByUuids([]string{conn.RequesterId, conn.RecipientId})
	if err != nil {
		zap.L().Error("查询连接双方用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	requester, recipient := pickPair(users, conn.RequesterId, conn.RecipientId)
	return buildConnectionRespond(conn, requester, recipient), nil
}

// Remove 删除连接记录
// 任意状态均可删除，物理删除，删除后双方可重新发起申请
func (c *connectionService) Remove(connectionId, actingUserId string) error {
	conn, err := c.repos.Connection.FindByUuid(connectionId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "连接不存在")
		}
		zap.L().Error("查询连接失败", zap.String("connection_id", connectionId), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if conn.RequesterId != actingUserId && conn.RecipientId != actingUserId {
		return errorx.New(errorx.CodeNotFound, "连接不存在")
	}

	if err := c.repos.Connection.Delete(conn.Uuid); err != nil {
		zap.L().Error("删除连接失败", zap.String("connection_id", connectionId), zap.Error(err))
		return errorx.ErrServerBusy
	}

	c.invalidatePairCache(conn.RequesterId, conn.RecipientId)
	return nil
}

// Discover 发现可建立连接的用户
// 排除自己以及与自己存在任何状态连接的用户；被拒绝的对端同样被排除，
// 只有显式删除连接后才会重新出现在发现列表中
func (c *connectionService) Discover(userId string) ([]respond.UserSummaryRespond, error) {
	cacheKey := "connection_discover_" + userId
	cachedStr, err := c.cache.Get(context.Background(), cacheKey)
	if err == nil && cachedStr != "" {
		var cached []respond.UserSummaryRespond
		if err := json.Unmarshal([]byte(cachedStr), &cached); err == nil {
			return cached, nil
		}
		zap.L().Warn("发现列表缓存解析失败，回退数据库", zap.String("cacheKey", cacheKey), zap.Error(err))
	}

	conns, err := c.repos.Connection.FindAllByUser(userId)
	if err != nil {
		zap.L().Error("查询用户连接失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	related := make(map[string]struct{}, len(conns))
	for _, conn := range conns {
		related[conn.RequesterId] = struct{}{}
		related[conn.RecipientId] = struct{}{}
	}

	users, err := c.repos.User.FindAllExcept(userId)
	if err != nil {
		zap.L().Error("查询用户列表失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	result := make([]respond.UserSummaryRespond, 0, len(users))
	for _, u := range users {
		if _, ok := related[u.Uuid]; ok {
			continue
		}
		result = append(result, respond.UserSummaryRespond{
			Uuid:     u.Uuid,
			Nickname: u.Nickname,
			Role:     u.Role,
			Headline: u.Headline,
			Avatar:   u.Avatar,
		})
	}

	// 异步回填缓存，短 TTL 容忍轻微过期
	c.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(result)
		if err != nil {
			zap.L().Error("序列化发现列表失败", zap.Error(err))
			return
		}
		if err := c.cache.Set(context.Background(), cacheKey, string(rspBytes), time.Minute*constants.REDIS_TIMEOUT); err != nil {
			zap.L().Error("写入发现列表缓存失败", zap.Error(err))
		}
	})

	return result, nil
}

// Status 查询与指定用户之间的连接状态
// 无连接时 status 为 none 且 canSendRequest 为 true
func (c *connectionService) Status(userId, otherUserId string) (*respond.ConnectionStatusRespond, error) {
	if otherUserId == "" || otherUserId == userId {
		return nil, errorx.New(errorx.CodeInvalidParam, "无效的用户ID")
	}

	conn, err := c.repos.Connection.FindBetween(userId, otherUserId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return &respond.ConnectionStatusRespond{
				Status:         connection_status_enum.String(connection_status_enum.NONE),
				CanSendRequest: true,
			}, nil
		}
		zap.L().Error("查询连接状态失败",
			zap.String("user_id", userId),
			zap.String("other_user_id", otherUserId),
			zap.Error(err),
		)
		return nil, errorx.ErrServerBusy
	}

	return &respond.ConnectionStatusRespond{
		Status:         connection_status_enum.String(conn.Status),
		ConnectionId:   conn.Uuid,
		IsSentByMe:     conn.RequesterId == userId,
		CanSendRequest: false,
	}, nil
}

// Stats 连接数量统计
// availableUsers 为近似值：总数减去已接受和两个方向的待处理数，
// 不扣除已拒绝的连接（发现列表会排除它们），在零处截断
func (c *connectionService) Stats(userId string) (*respond.ConnectionStatsRespond, error) {
	accepted, err := c.repos.Connection.CountAcceptedByUser(userId)
	if err != nil {
		zap.L().Error("统计已接受连接失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	pendingReceived, err := c.repos.Connection.CountPendingByRecipient(userId)
	if err != nil {
		zap.L().Error("统计收到的待处理申请失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	pendingSent, err := c.repos.Connection.CountPendingByRequester(userId)
	if err != nil {
		zap.L().Error("统计发出的待处理申请失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	totalUsers, err := c.repos.User.CountAll()
	if err != nil {
		zap.L().Error("统计用户总数失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 总数含自己，先减一
	available := totalUsers - 1 - accepted - pendingReceived - pendingSent
	if available < 0 {
		available = 0
	}

	return &respond.ConnectionStatsRespond{
		Accepted:        accepted,
		PendingReceived: pendingReceived,
		PendingSent:     pendingSent,
		AvailableUsers:  available,
	}, nil
}

// invalidatePairCache 异步失效双方的发现列表缓存
func (c *connectionService) invalidatePairCache(userA, userB string) {
	c.cache.SubmitTask(func() {
		patterns := []string{
			"connection_discover_" + userA + "*",
			"connection_discover_" + userB + "*",
		}
		if err := c.cache.DeleteByPatterns(context.Background(), patterns); err != nil {
			zap.L().Error(err.Error())
		}
	})
}

// buildConnectionRespond 组装连接响应
func buildConnectionRespond(conn *model.Connection, requester, recipient *model.UserInfo) *respond.ConnectionRespond {
	rsp := &respond.ConnectionRespond{
		ConnectionId: conn.Uuid,
		Status:       connection_status_enum.String(conn.Status),
		CreatedAt:    conn.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    conn.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if requester != nil {
		rsp.Requester = respond.UserSummaryRespond{
			Uuid:     requester.Uuid,
			Nickname: requester.Nickname,
			Role:     requester.Role,
			Headline: requester.Headline,
			Avatar:   requester.Avatar,
		}
	}
	if recipient != nil {
		rsp.Recipient = respond.UserSummaryRespond{
			Uuid:     recipient.Uuid,
			Nickname: recipient.Nickname,
			Role:     recipient.Role,
			Headline: recipient.Headline,
			Avatar:   recipient.Avatar,
		}
	}
	return rsp
}

// pickPair 从批量查询结果中按 UUID 取出发起方和接收方
func pickPair(users []model.UserInfo, requesterId, recipientId string) (*model.UserInfo, *model.UserInfo) {
	var requester, recipient *model.UserInfo
	for i := range users {
		switch users[i].Uuid {
		case requesterId:
			requester = &users[i]
		case recipientId:
			recipient = &users[i]
		}
	}
	return requester, recipient
}
