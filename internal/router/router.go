// Package router 提供 HTTP 路由注册
// 本文件是路由注册的入口，聚合所有子模块的路由
package router

import (
	"devconnect_server/internal/dao/mysql/repository"
	"devconnect_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
// 在 http_server.Init() 中调用
// 按模块分别注册各个路由组
func RegisterRoutes(r *gin.Engine, h *handler.Handlers, ws *handler.WsHandler, repos *repository.Repositories) {
	RegisterAuthRoutes(r, h)              // 认证路由（注册/登录/Token 刷新）
	RegisterUserRoutes(r, h, repos)       // 用户路由
	RegisterConnectionRoutes(r, h)        // 连接请求路由
	RegisterMessageRoutes(r, h)           // 会话/消息/群组路由
	RegisterProfileRoutes(r, h)           // 个人主页路由
	RegisterWebSocketRoutes(r, ws)        // WebSocket 路由
}
