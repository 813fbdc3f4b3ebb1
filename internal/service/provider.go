// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"devconnect_server/internal/dao/mysql/repository"
	myredis "devconnect_server/internal/dao/redis"
	"devconnect_server/internal/service/chat"
	"devconnect_server/internal/service/connection"
	"devconnect_server/internal/service/group"
	"devconnect_server/internal/service/profile"
	"devconnect_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问各个 Service
type Services struct {
	User       UserService       // 用户 Service
	Connection ConnectionService // 连接 Service
	Chat       ChatService       // 聊天 Service
	Group      GroupService      // 群组 Service
	Profile    ProfileService    // 个人主页 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合、缓存服务和推送端口
//  2. 创建各个 Service 实例，注入依赖
//  3. 返回 Services 聚合
func NewServices(repos *repository.Repositories, cache myredis.AsyncCacheService, notifier Notifier) *Services {
	return &Services{
		User:       user.NewUserService(repos, cache),
		Connection: connection.NewConnectionService(repos, cache),
		Chat:       chat.NewChatService(repos, cache, notifier),
		Group:      group.NewGroupService(repos, cache),
		Profile:    profile.NewProfileService(repos),
	}
}
