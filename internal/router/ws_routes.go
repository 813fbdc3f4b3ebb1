package router

import (
	"devconnect_server/internal/handler"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由
// 认证在 Connect 内部通过查询参数中的 token 完成
func RegisterWebSocketRoutes(r *gin.Engine, ws *handler.WsHandler) {
	r.GET("/ws", ws.Connect)
}
