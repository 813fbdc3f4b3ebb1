package router

import (
	"devconnect_server/internal/handler"
	"devconnect_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册会话/消息/群组相关路由（需要认证）
func RegisterMessageRoutes(r *gin.Engine, h *handler.Handlers) {
	msgGroup := r.Group("/messages")
	msgGroup.Use(middleware.JWTAuth())
	{
		msgGroup.GET("/chats", h.Message.ListChats)             // 会话列表
		msgGroup.GET("/messages/:chatId", h.Message.GetMessages) // 历史消息分页
		msgGroup.POST("/send", h.Message.SendMessage)           // 发送消息
		msgGroup.PUT("/read/:messageId", h.Message.MarkRead)    // 单条消息标记已读

		// ===== 群组管理 =====
		groupGroup := msgGroup.Group("/groups")
		{
			groupGroup.POST("", h.Group.CreateGroup)
			groupGroup.GET("/:id", h.Group.GetGroupDetail)
			groupGroup.POST("/:id/members", h.Group.AddMembers)
			groupGroup.DELETE("/:id/members/:userId", h.Group.RemoveMember)
		}
	}
}
