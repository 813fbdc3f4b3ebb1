// Package repository 定义数据访问层接口和聚合结构
package repository

import (
	"devconnect_server/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
// 提供用户的增删改查操作
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByEmail 根据邮箱查找用户
	FindByEmail(email string) (*model.UserInfo, error)
	// FindAllExcept 查找除指定用户外的所有用户
	FindAllExcept(excludeUuid string) ([]model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// Create 创建新用户
	Create(user *model.UserInfo) error
	// Update 更新用户信息
	Update(user *model.UserInfo) error
	// UpdateLastOnline 刷新用户最后在线时间
	UpdateLastOnline(uuid string) error
	// UpdateStatusByUuids 批量更新用户状态（启用/禁用）
	UpdateStatusByUuids(uuids []string, status int8) error
	// SoftDeleteByUuids 批量软删除用户
	SoftDeleteByUuids(uuids []string) error
	// CountAll 统计注册用户总数
	CountAll() (int64, error)
}

// ConnectionRepository 连接请求数据访问接口
// 一对用户之间无论方向最多只存在一条记录
type ConnectionRepository interface {
	// FindByUuid 根据 UUID 查找连接
	FindByUuid(uuid string) (*model.Connection, error)
	// FindBetween 查找两个用户之间的连接（不区分方向）
	FindBetween(userA, userB string) (*model.Connection, error)
	// FindAllByUser 查找用户作为任意一方的所有连接
	FindAllByUser(userId string) ([]model.Connection, error)
	// Create 创建连接记录
	Create(conn *model.Connection) error
	// Update 更新连接记录（全字段更新）
	Update(conn *model.Connection) error
	// Delete 物理删除连接记录，删除后允许重新发起申请
	Delete(uuid string) error
	// CountAcceptedByUser 统计用户已接受的连接数
	CountAcceptedByUser(userId string) (int64, error)
	// CountPendingByRecipient 统计用户收到的待处理申请数
	CountPendingByRecipient(userId string) (int64, error)
	// CountPendingByRequester 统计用户发出的待处理申请数
	CountPendingByRequester(userId string) (int64, error)
	// SoftDeleteByUsers 批量软删除指定用户参与的所有连接
	SoftDeleteByUsers(userUuids []string) error
}

// MessageRepository 消息数据访问接口
// 单聊和群聊消息共用一张表，通过 is_group 区分
type MessageRepository interface {
	// Create 创建消息记录
	Create(msg *model.Message) error
	// FindByUuid 根据雪花 ID 查找消息
	FindByUuid(uuid int64) (*model.Message, error)
	// FindDirectPage 分页查询两个用户之间的单聊消息，按时间倒序
	FindDirectPage(userA, userB string, skip, take int) ([]model.Message, error)
	// FindGroupPage 分页查询群聊消息，按时间倒序
	FindGroupPage(groupUuid string, skip, take int) ([]model.Message, error)
	// FindDirectPartners 查找与用户有过单聊往来的所有对端 UUID
	FindDirectPartners(userId string) ([]string, error)
	// FindLastDirect 查找两个用户之间最新的一条单聊消息
	FindLastDirect(userA, userB string) (*model.Message, error)
	// CountUnreadDirectFrom 统计 sender 发给 recipient 的未读单聊消息数
	CountUnreadDirectFrom(senderId, recipientId string) (int64, error)
	// CountUnreadGroup 统计群内非指定用户发送的未读消息数
	CountUnreadGroup(groupUuid, excludeSender string) (int64, error)
	// MarkDirectRead 将 sender 发给 recipient 的所有未读单聊消息置为已读
	MarkDirectRead(senderId, recipientId string) error
	// MarkGroupRead 将群内非指定用户发送的未读消息置为已读
	MarkGroupRead(groupUuid, excludeSender string) error
	// MarkReadByUuid 将指定消息置为已读，仅当 recipient 匹配时生效
	// 返回受影响的行数，0 表示消息不存在或接收者不符
	MarkReadByUuid(uuid int64, recipientId string) (int64, error)
}

// GroupRepository 群组数据访问接口
type GroupRepository interface {
	// FindByUuid 根据 UUID 查找群组
	FindByUuid(uuid string) (*model.GroupInfo, error)
	// FindByUuids 批量根据 UUID 查找群组
	FindByUuids(uuids []string) ([]model.GroupInfo, error)
	// Create 创建新群组
	Create(group *model.GroupInfo) error
	// Update 更新群组信息
	Update(group *model.GroupInfo) error
	// UpdateLastMessage 更新群组最新消息 ID，同时刷新 updated_at
	UpdateLastMessage(uuid string, messageUuid int64) error
	// IncrementMemberCountBy 增加群成员数量（指定数量）
	IncrementMemberCountBy(uuid string, count int) error
	// DecrementMemberCountBy 减少群成员数量（指定数量）
	DecrementMemberCountBy(uuid string, count int) error
	// SoftDeleteByUuids 批量软删除群组
	SoftDeleteByUuids(uuids []string) error
}

// ==================== 复合结构 ====================

// GroupMemberWithUserInfo 群成员详细信息（含用户资料）
// 用于群成员列表展示，包含用户的基本信息
type GroupMemberWithUserInfo struct {
	UserId   string `json:"userId"`   // 用户 UUID
	Nickname string `json:"nickname"` // 用户昵称
	Avatar   string `json:"avatar"`   // 用户头像
	Role     int8   `json:"role"`     // 成员角色
}

// GroupMemberRepository 群成员数据访问接口
type GroupMemberRepository interface {
	// FindByGroupUuid 查找群组的所有成员记录
	FindByGroupUuid(groupUuid string) ([]model.GroupMember, error)
	// FindGroupUuidsByUser 查找用户加入的所有群组 UUID
	FindGroupUuidsByUser(userUuid string) ([]string, error)
	// FindMembersWithUserInfo 查找群成员（含用户详细信息）
	FindMembersWithUserInfo(groupUuid string) ([]GroupMemberWithUserInfo, error)
	// Exists 判断用户是否为群成员
	Exists(groupUuid, userUuid string) (bool, error)
	// CreateBatch 批量添加群成员
	CreateBatch(members []model.GroupMember) error
	// Delete 移除单个群成员
	Delete(groupUuid, userUuid string) error
	// DeleteByGroupUuid 删除群组所有成员
	DeleteByGroupUuid(groupUuid string) error
	// DeleteByUserUuids 批量删除指定用户在所有群组的成员记录
	DeleteByUserUuids(userUuids []string) error
}

// SkillRepository 技能数据访问接口
type SkillRepository interface {
	// FindByUuid 根据 UUID 查找技能
	FindByUuid(uuid string) (*model.Skill, error)
	// FindByUser 查找用户的所有技能
	FindByUser(userUuid string) ([]model.Skill, error)
	// Create 创建技能条目
	Create(skill *model.Skill) error
	// Update 更新技能条目
	Update(skill *model.Skill) error
	// Delete 软删除技能条目
	Delete(uuid string) error
	// DeleteByUsers 批量软删除指定用户的所有技能
	DeleteByUsers(userUuids []string) error
}

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	// FindByUuid 根据 UUID 查找项目
	FindByUuid(uuid string) (*model.Project, error)
	// FindByUser 查找用户的所有项目
	FindByUser(userUuid string) ([]model.Project, error)
	// Create 创建项目条目
	Create(project *model.Project) error
	// Update 更新项目条目
	Update(project *model.Project) error
	// Delete 软删除项目条目
	Delete(uuid string) error
	// DeleteByUsers 批量软删除指定用户的所有项目
	DeleteByUsers(userUuids []string) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db          *gorm.DB              // GORM 数据库实例
	User        UserRepository        // 用户 Repository
	Connection  ConnectionRepository  // 连接 Repository
	Message     MessageRepository     // 消息 Repository
	Group       GroupRepository       // 群组 Repository
	GroupMember GroupMemberRepository // 群成员 Repository
	Skill       SkillRepository       // 技能 Repository
	Project     ProjectRepository     // 项目 Repository
}

// NewRepositories 创建所有 Repository 实例
// 接收 GORM 数据库实例，初始化并返回 Repositories 聚合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:          db,
		User:        NewUserRepository(db),
		Connection:  NewConnectionRepository(db),
		Message:     NewMessageRepository(db),
		Group:       NewGroupRepository(db),
		GroupMember: NewGroupMemberRepository(db),
		Skill:       NewSkillRepository(db),
		Project:     NewProjectRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// fn: 事务执行函数，接收事务内的 Repositories 实例
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	// 没有底层数据源时直接执行，内存实现自行保证一致性
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
