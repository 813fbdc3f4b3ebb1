package router

import (
	"devconnect_server/internal/handler"
	"devconnect_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterConnectionRoutes 注册连接请求相关路由（需要认证）
func RegisterConnectionRoutes(r *gin.Engine, h *handler.Handlers) {
	connGroup := r.Group("/connections")
	connGroup.Use(middleware.JWTAuth())
	{
		connGroup.POST("/request", h.Connection.SendRequest)   // 发起连接申请
		connGroup.PUT("/respond/:id", h.Connection.Respond)    // 接受/拒绝申请
		connGroup.DELETE("/remove/:id", h.Connection.Remove)   // 删除连接
		connGroup.GET("/discover", h.Connection.Discover)      // 发现新用户
		connGroup.GET("/status/:userId", h.Connection.Status)  // 查询连接状态
		connGroup.GET("/stats", h.Connection.Stats)            // 连接数量统计
	}
}
