// Package chat 实现聊天聚合的业务逻辑
// 将单聊和群聊合并为统一的会话列表，并处理消息收发与已读状态流转
package chat

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"devconnect_server/internal/dao/mysql/repository"
	myredis "devconnect_server/internal/dao/redis"
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/dto/respond"
	"devconnect_server/internal/model"
	"devconnect_server/pkg/constants"
	"devconnect_server/pkg/enum/message/message_type_enum"
	"devconnect_server/pkg/errorx"
	"devconnect_server/pkg/util/snowflake"
)

// Notifier 实时推送端口
// 由 websocket 网关实现，推送失败仅记录日志，不影响主流程
type Notifier interface {
	// Publish 向指定用户的连接推送事件
	Publish(userId, event string, payload any)
}

// chatService 聊天聚合业务逻辑实现
// 通过构造函数注入 Repository、Cache 和推送端口
type chatService struct {
	repos    *repository.Repositories
	cache    myredis.AsyncCacheService
	notifier Notifier
}

// NewChatService 构造函数，注入所有依赖
func NewChatService(repos *repository.Repositories, cacheService myredis.AsyncCacheService, notifier Notifier) *chatService {
	return &chatService{
		repos:    repos,
		cache:    cacheService,
		notifier: notifier,
	}
}

// chatThread 会话条目的内部表示，排序后再转为响应结构
type chatThread struct {
	rsp          respond.ChatThreadRespond
	lastActivity time.Time
}

// ListChats 获取按最近活跃排序的会话列表
// 单聊条目按消息往来的对端聚合，群聊条目按群成员关系聚合，
// 按最后活跃时间倒序合并，时间相同时按会话ID倒序保证确定性
func (c *chatService) ListChats(userId string) ([]respond.ChatThreadRespond, error) {
	cacheKey := "chat_list_" + userId
	cachedStr, err := c.cache.Get(context.Background(), cacheKey)
	if err == nil && cachedStr != "" {
		var cached []respond.ChatThreadRespond
		if err := json.Unmarshal([]byte(cachedStr), &cached); err == nil {
			return cached, nil
		}
		zap.L().Warn("会话列表缓存解析失败，回退数据库", zap.String("cacheKey", cacheKey), zap.Error(err))
	}

	threads := make([]chatThread, 0)

	// 1. 单聊会话：每个有过消息往来的对端一个条目
	directThreads, err := c.buildDirectThreads(userId)
	if err != nil {
		return nil, err
	}
	threads = append(threads, directThreads...)

	// 2. 群聊会话：用户加入的每个群一个条目
	groupThreads, err := c.buildGroupThreads(userId)
	if err != nil {
		return nil, err
	}
	threads = append(threads, groupThreads...)

	// 3. 按最后活跃时间倒序，时间相同按会话ID倒序
	sort.Slice(threads, func(i, j int) bool {
		if !threads[i].lastActivity.Equal(threads[j].lastActivity) {
			return threads[i].lastActivity.After(threads[j].lastActivity)
		}
		return threads[i].rsp.ChatId > threads[j].rsp.ChatId
	})

	result := make([]respond.ChatThreadRespond, 0, len(threads))
	for _, t := range threads {
		result = append(result, t.rsp)
	}

	c.cache.SubmitTask(func() {
		rspBytes, err := json.Marshal(result)
		if err != nil {
			zap.L().Error("序列化会话列表失败", zap.Error(err))
			return
		}
		if err := c.cache.Set(context.Background(), cacheKey, string(rspBytes), time.Minute*constants.REDIS_TIMEOUT); err != nil {
			zap.L().Error("写入会话列表缓存失败", zap.Error(err))
		}
	})

	return result, nil
}

// buildDirectThreads 构建单聊会话条目
func (c *chatService) buildDirectThreads(userId string) ([]chatThread, error) {
	partners, err := c.repos.Message.FindDirectPartners(userId)
	if err != nil {
		zap.L().Error("查询单聊对端失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(partners) == 0 {
		return nil, nil
	}

	users, err := c.repos.User.FindByUuids(partners)
	if err != nil {
		zap.L().Error("批量查询对端用户失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	userByUuid := make(map[string]*model.UserInfo, len(users))
	for i := range users {
		userByUuid[users[i].Uuid] = &users[i]
	}

	threads := make([]chatThread, 0, len(partners))
	for _, partnerId := range partners {
		partner, ok := userByUuid[partnerId]
		if !ok {
			// 对端已注销，跳过该会话
			continue
		}

		last, err := c.repos.Message.FindLastDirect(userId, partnerId)
		if err != nil {
			if errorx.IsNotFound(err) {
				continue
			}
			zap.L().Error("查询最新单聊消息失败", zap.String("partner_id", partnerId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}

		unread, err := c.repos.Message.CountUnreadDirectFrom(partnerId, userId)
		if err != nil {
			zap.L().Error("统计单聊未读失败", zap.String("partner_id", partnerId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}

		lastRsp := c.buildMessageRespond(last, userByUuid, nil)
		threads = append(threads, chatThread{
			rsp: respond.ChatThreadRespond{
				ChatId:         partnerId,
				IsGroup:        false,
				Name:           partner.Nickname,
				Avatar:         partner.Avatar,
				LastMessage:    lastRsp,
				UnreadCount:    unread,
				LastActivityAt: last.CreatedAt.Format("2006-01-02 15:04:05"),
			},
			lastActivity: last.CreatedAt,
		})
	}
	return threads, nil
}

// buildGroupThreads 构建群聊会话条目
// 群聊的最后活跃时间取群组的 updated_at，发消息时会刷新该字段
func (c *chatService) buildGroupThreads(userId string) ([]chatThread, error) {
	groupUuids, err := c.repos.GroupMember.FindGroupUuidsByUser(userId)
	if err != nil {
		zap.L().Error("查询用户群组失败", zap.String("user_id", userId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	if len(groupUuids) == 0 {
		return nil, nil
	}

	groups, err := c.repos.Group.FindByUuids(groupUuids)
	if err != nil {
		zap.L().Error("批量查询群组失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	threads := make([]chatThread, 0, len(groups))
	for i := range groups {
		g := &groups[i]

		var lastRsp *respond.MessageRespond
		if g.LastMessageUuid != 0 {
			last, err := c.repos.Message.FindByUuid(g.LastMessageUuid)
			if err != nil {
				if !errorx.IsNotFound(err) {
					zap.L().Error("查询群最新消息失败", zap.String("group_uuid", g.Uuid), zap.Error(err))
					return nil, errorx.ErrServerBusy
				}
				// 冗余指针悬空时忽略，不影响会话列表
			} else {
				lastRsp = c.buildMessageRespond(last, nil, nil)
			}
		}

		unread, err := c.repos.Message.CountUnreadGroup(g.Uuid, userId)
		if err != nil {
			zap.L().Error("统计群聊未读失败", zap.String("group_uuid", g.Uuid), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}

		threads = append(threads, chatThread{
			rsp: respond.ChatThreadRespond{
				ChatId:         g.Uuid,
				IsGroup:        true,
				Name:           g.Name,
				LastMessage:    lastRsp,
				UnreadCount:    unread,
				LastActivityAt: g.UpdatedAt.Format("2006-01-02 15:04:05"),
			},
			lastActivity: g.UpdatedAt,
		})
	}
	return threads, nil
}

// GetMessages 获取单个会话的一页历史消息
// 分页计算沿用 skip=(page-1)*limit、take=limit*page 的口径，每页会重新拉取
// 并丢弃此前页的行，保持既有接口行为不变；页内翻转为时间正序返回。
// 副作用：将会话中来自对方（群聊为任何非本人成员）的未读消息标记为已读
func (c *chatService) GetMessages(userId, chatId string, isGroup bool, page, limit int) ([]respond.MessageRespond, error) {
	if chatId == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "会话ID不能为空")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = constants.DEFAULT_MESSAGE_LIMIT
	}
	if limit > constants.MAX_MESSAGE_LIMIT {
		limit = constants.MAX_MESSAGE_LIMIT
	}
	skip := (page - 1) * limit
	take := limit * page

	var msgs []model.Message
	var err error
	if isGroup {
		// 仅群成员可以拉取群聊记录
		isMember, memberErr := c.repos.GroupMember.Exists(chatId, userId)
		if memberErr != nil {
			zap.L().Error("查询群成员关系失败", zap.String("group_uuid", chatId), zap.Error(memberErr))
			return nil, errorx.ErrServerBusy
		}
		if !isMember {
			return nil, errorx.New(errorx.CodeNotFound, "群组不存在或未加入")
		}
		msgs, err = c.repos.Message.FindGroupPage(chatId, skip, take)
	} else {
		msgs, err = c.repos.Message.FindDirectPage(userId, chatId, skip, take)
	}
	if err != nil {
		zap.L().Error("查询消息失败", zap.String("chat_id", chatId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	// 倒序查询结果翻转为页内时间正序
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	// 标记来自对方的未读消息为已读
	if isGroup {
		err = c.repos.Message.MarkGroupRead(chatId, userId)
	} else {
		err = c.repos.Message.MarkDirectRead(chatId, userId)
	}
	if err != nil {
		// 标记失败不阻塞历史拉取，未读数下次会重新计算
		zap.L().Error("标记已读失败", zap.String("chat_id", chatId), zap.Error(err))
	}

	c.invalidateChatListCache(userId)

	// 批量组装发送者信息
	senderIds := make([]string, 0, len(msgs))
	seen := make(map[string]struct{}, len(msgs))
	for i := range msgs {
		if _, ok := seen[msgs[i].SenderId]; !ok {
			seen[msgs[i].SenderId] = struct{}{}
			senderIds = append(senderIds, msgs[i].SenderId)
		}
	}
	users, err := c.repos.User.FindByUuids(senderIds)
	if err != nil {
		zap.L().Error("批量查询发送者失败", zap.Error(err))
		return nil, errorx.ErrServerBusy
	}
	userByUuid := make(map[string]*model.UserInfo, len(users))
	for i := range users {
		userByUuid[users[i].Uuid] = &users[i]
	}

	result := make([]respond.MessageRespond, 0, len(msgs))
	for i := range msgs {
		rsp := c.buildMessageRespond(&msgs[i], userByUuid, nil)
		// 本次拉取已把对方消息置为已读，响应同步已读状态
		if msgs[i].SenderId != userId {
			rsp.Read = true
		}
		result = append(result, *rsp)
	}
	return result, nil
}

// SendMessage 发送单聊或群聊消息
// 内容去除首尾空白后不能为空；recipient 与 groupId 按 isGroup 二选一。
// 群聊发送会刷新群组的最后活跃时间和最新消息指针；
// 实时推送仅针对单聊接收方，推送失败不影响消息落库
func (c *chatService) SendMessage(senderId string, req request.SendMessageRequest) (*respond.MessageRespond, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}
	if len(content) > constants.MAX_CONTENT_LENGTH {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容过长")
	}

	msgType := req.MessageType
	if msgType == "" {
		msgType = message_type_enum.Text
	}
	if !message_type_enum.Valid(msgType) {
		return nil, errorx.New(errorx.CodeInvalidParam, "无效的消息类型")
	}

	sender, err := c.repos.User.FindByUuid(senderId)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.New(errorx.CodeUserNotExist, "发送者不存在")
		}
		zap.L().Error("查询发送者失败", zap.String("sender_id", senderId), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	msg := &model.Message{
		Uuid:     snowflake.GenerateID(),
		SenderId: senderId,
		IsGroup:  req.IsGroup,
		Content:  content,
		Type:     msgType,
		Url:      req.Url,
		Read:     false,
	}

	var recipient *model.UserInfo
	if req.IsGroup {
		if req.GroupId == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "群聊消息必须指定群组ID")
		}
		if _, err := c.repos.Group.FindByUuid(req.GroupId); err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "群组不存在")
			}
			zap.L().Error("查询群组失败", zap.String("group_uuid", req.GroupId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		isMember, err := c.repos.GroupMember.Exists(req.GroupId, senderId)
		if err != nil {
			zap.L().Error("查询群成员关系失败", zap.String("group_uuid", req.GroupId), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		if !isMember {
			return nil, errorx.New(errorx.CodeForbidden, "不是群成员，无法发送消息")
		}
		msg.GroupUuid = req.GroupId
	} else {
		if req.Recipient == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "单聊消息必须指定接收方")
		}
		recipient, err = c.repos.User.FindByUuid(req.Recipient)
		if err != nil {
			if errorx.IsNotFound(err) {
				return nil, errorx.New(errorx.CodeNotFound, "接收方用户不存在")
			}
			zap.L().Error("查询接收方失败", zap.String("recipient_id", req.Recipient), zap.Error(err))
			return nil, errorx.ErrServerBusy
		}
		msg.RecipientId = req.Recipient
	}

	if err := c.repos.Message.Create(msg); err != nil {
		zap.L().Error("写入消息失败", zap.Int64("uuid", msg.Uuid), zap.Error(err))
		return nil, errorx.ErrServerBusy
	}

	if req.IsGroup {
		// 刷新群组最新消息指针，失败不回滚消息写入，按语句隔离错误
		if err := c.repos.Group.UpdateLastMessage(req.GroupId, msg.Uuid); err != nil {
			zap.L().Error("更新群组最新消息失败", zap.String("group_uuid", req.GroupId), zap.Error(err))
		}
	}

	userByUuid := map[string]*model.UserInfo{senderId: sender}
	rsp := c.buildMessageRespond(msg, userByUuid, recipient)

	// 单聊消息实时推送给接收方
	if !req.IsGroup && c.notifier != nil {
		c.notifier.Publish(req.Recipient, "newMessage", rsp)
	}

	c.invalidateChatListCache(senderId)
	if !req.IsGroup {
		c.invalidateChatListCache(req.Recipient)
	}

	return rsp, nil
}

// MarkRead 将单条消息标记为已读
// 仅当消息存在、当前用户是接收方且消息未读时放行
// 已读消息和不存在的消息同样按未找到处理，重复调用不会再次成功
func (c *chatService) MarkRead(userId string, messageUuid int64) error {
	msg, err := c.repos.Message.FindByUuid(messageUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return errorx.New(errorx.CodeNotFound, "消息不存在")
		}
		zap.L().Error("查询消息失败", zap.Int64("uuid", messageUuid), zap.Error(err))
		return errorx.ErrServerBusy
	}
	if msg.RecipientId != userId || msg.Read {
		return errorx.New(errorx.CodeNotFound, "消息不存在或已读")
	}

	if _, err := c.repos.Message.MarkReadByUuid(messageUuid, userId); err != nil {
		zap.L().Error("标记消息已读失败", zap.Int64("uuid", messageUuid), zap.Error(err))
		return errorx.ErrServerBusy
	}

	c.invalidateChatListCache(userId)
	return nil
}

// invalidateChatListCache 异步失效会话列表缓存
func (c *chatService) invalidateChatListCache(userId string) {
	c.cache.SubmitTask(func() {
		if err := c.cache.Delete(context.Background(), "chat_list_"+userId); err != nil {
			zap.L().Error(err.Error())
		}
	})
}

// buildMessageRespond 组装消息响应
// userByUuid 可为 nil，此时不填充发送者摘要；recipient 仅单聊发送时传入
func (c *chatService) buildMessageRespond(msg *model.Message, userByUuid map[string]*model.UserInfo, recipient *model.UserInfo) *respond.MessageRespond {
	rsp := &respond.MessageRespond{
		Uuid:      msg.Uuid,
		GroupId:   msg.GroupUuid,
		IsGroup:   msg.IsGroup,
		Content:   msg.Content,
		Type:      msg.Type,
		Url:       msg.Url,
		Read:      msg.Read,
		CreatedAt: msg.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if userByUuid != nil {
		if sender, ok := userByUuid[msg.SenderId]; ok {
			rsp.Sender = &respond.UserSummaryRespond{
				Uuid:     sender.Uuid,
				Nickname: sender.Nickname,
				Role:     sender.Role,
				Headline: sender.Headline,
				Avatar:   sender.Avatar,
			}
		}
	}
	if recipient != nil {
		rsp.Recipient = &respond.UserSummaryRespond{
			Uuid:     recipient.Uuid,
			Nickname: recipient.Nickname,
			Role:     recipient.Role,
			Headline: recipient.Headline,
			Avatar:   recipient.Avatar,
		}
	}
	return rsp
}
