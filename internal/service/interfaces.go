// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/dto/respond"
	"devconnect_server/internal/service/chat"
)

// Notifier 实时推送端口的别名
// 接口本体定义在 chat 包（消费方），由 websocket 网关实现
type Notifier = chat.Notifier

// UserService 用户业务接口
// 处理用户注册、登录、资料管理、管理员批量操作等功能
type UserService interface {
	// Register 邮箱注册并签发令牌
	Register(req request.RegisterRequest) (*respond.LoginRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 刷新令牌对
	RefreshToken(refreshToken string) (*respond.TokenRespond, error)
	// GetUserInfo 获取单个用户信息
	GetUserInfo(uuid string) (*respond.UserInfoRespond, error)
	// GetUserList 获取用户列表（排除指定用户）
	GetUserList(ownerId string) ([]respond.UserSummaryRespond, error)
	// UpdateProfile 更新个人资料
	UpdateProfile(uuid string, req request.UpdateProfileRequest) (*respond.UserInfoRespond, error)
	// SetUsersStatus 批量启用/禁用用户（管理员）
	SetUsersStatus(uuidList []string, status int8) error
	// DeleteUsers 批量注销用户并级联清理连接和群成员关系（管理员）
	DeleteUsers(uuidList []string) error
}

// ConnectionService 连接请求业务接口
// 实现 申请中 -> 已接受/已拒绝 的状态机，一对用户最多一条记录
type ConnectionService interface {
	// Request 发起连接申请
	Request(requesterId, recipientId string) (*respond.ConnectionRespond, error)
	// Respond 接受或拒绝申请，仅接收方可操作
	Respond(connectionId, actingUserId, action string) (*respond.ConnectionRespond, error)
	// Remove 删除连接记录，任一方可操作，删除后可重新发起申请
	Remove(connectionId, actingUserId string) error
	// Discover 发现可建立连接的用户（排除自己和任何已有连接的对端）
	Discover(userId string) ([]respond.UserSummaryRespond, error)
	// Status 查询与指定用户之间的连接状态
	Status(userId, otherUserId string) (*respond.ConnectionStatusRespond, error)
	// Stats 连接数量统计
	Stats(userId string) (*respond.ConnectionStatsRespond, error)
}

// ChatService 聊天聚合业务接口
// 合并单聊和群聊为统一的会话列表，并处理消息收发与已读状态
type ChatService interface {
	// ListChats 获取按最近活跃排序的会话列表
	ListChats(userId string) ([]respond.ChatThreadRespond, error)
	// GetMessages 获取单个会话的一页历史消息（页内时间正序）
	// 副作用：将该会话中来自对方的未读消息标记为已读
	GetMessages(userId, chatId string, isGroup bool, page, limit int) ([]respond.MessageRespond, error)
	// SendMessage 发送单聊或群聊消息
	SendMessage(senderId string, req request.SendMessageRequest) (*respond.MessageRespond, error)
	// MarkRead 将单条消息标记为已读，仅接收方可操作
	MarkRead(userId string, messageUuid int64) error
}

// GroupService 群组业务接口
// 处理群组创建和成员管理
type GroupService interface {
	// CreateGroup 创建群组，创建者自动入群
	CreateGroup(creatorId string, req request.CreateGroupRequest) (*respond.GroupRespond, error)
	// GetGroupDetail 获取群组详情（含成员列表）
	GetGroupDetail(groupId string) (*respond.GroupRespond, error)
	// AddMembers 添加群成员，仅创建者可操作
	AddMembers(groupId, actingUserId string, members []string) error
	// RemoveMember 移除群成员，创建者可移除任何人，普通成员仅可退出
	RemoveMember(groupId, actingUserId, targetUserId string) error
}

// ProfileService 个人主页业务接口
// 处理技能和项目条目的增删改查
type ProfileService interface {
	// GetProfile 获取个人主页（用户资料+技能+项目）
	GetProfile(userId string) (*respond.ProfileRespond, error)
	// ListSkills 获取用户技能列表
	ListSkills(userId string) ([]respond.SkillRespond, error)
	// CreateSkill 创建技能条目
	CreateSkill(userId string, req request.SaveSkillRequest) (*respond.SkillRespond, error)
	// UpdateSkill 更新技能条目，仅所有者可操作
	UpdateSkill(userId, skillUuid string, req request.SaveSkillRequest) (*respond.SkillRespond, error)
	// DeleteSkill 删除技能条目，仅所有者可操作
	DeleteSkill(userId, skillUuid string) error
	// ListProjects 获取用户项目列表
	ListProjects(userId string) ([]respond.ProjectRespond, error)
	// CreateProject 创建项目条目
	CreateProject(userId string, req request.SaveProjectRequest) (*respond.ProjectRespond, error)
	// UpdateProject 更新项目条目，仅所有者可操作
	UpdateProject(userId, projectUuid string, req request.SaveProjectRequest) (*respond.ProjectRespond, error)
	// DeleteProject 删除项目条目，仅所有者可操作
	DeleteProject(userId, projectUuid string) error
}
