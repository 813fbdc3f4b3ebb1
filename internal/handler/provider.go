// Package handler 提供 HTTP 请求处理器
// 本文件定义 Handler 聚合结构和构造函数
// 遵循依赖倒置原则，通过构造函数注入 Service 依赖
package handler

import (
	"devconnect_server/internal/service"

	"github.com/gin-gonic/gin"
)

// Handlers 聚合所有 Handler 实例
// 作为依赖注入的入口，Router 层通过此结构访问各个 Handler
type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Connection *ConnectionHandler
	Message    *MessageHandler
	Group      *GroupHandler
	Profile    *ProfileHandler
}

// NewHandlers 创建并注入所有 Handler 实例
// svc: Service 层聚合实例
// 返回: Handlers 聚合指针
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.User),
		User:       NewUserHandler(svc.User),
		Connection: NewConnectionHandler(svc.Connection),
		Message:    NewMessageHandler(svc.Chat),
		Group:      NewGroupHandler(svc.Group),
		Profile:    NewProfileHandler(svc.Profile),
	}
}

// currentUserId 从上下文取 JWT 中间件写入的当前用户 UUID
func currentUserId(c *gin.Context) string {
	return c.GetString("user_id")
}
