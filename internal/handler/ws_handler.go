// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	"net/http"

	gatewayws "devconnect_server/internal/gateway/websocket"
	"devconnect_server/pkg/util/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WsHandler WebSocket 连接处理器
type WsHandler struct {
	manager *gatewayws.ConnManager
}

// NewWsHandler 创建 WebSocket 处理器实例
func NewWsHandler(manager *gatewayws.ConnManager) *WsHandler {
	return &WsHandler{manager: manager}
}

// Connect 升级 HTTP 连接为 WebSocket
// GET /ws?token=xxx
// 查询参数: token - Access Token
//
// 浏览器的 WebSocket API 无法设置 Authorization 头，
// 所以这里从查询参数取 token 做认证
func (h *WsHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		zap.L().Error("ws token获取失败")
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "缺少token参数",
		})
		return
	}
	claims, err := jwt.ParseToken(token)
	if err != nil || claims.Subject != "access_token" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "无效的token",
		})
		return
	}
	// 升级连接并注册客户端
	gatewayws.NewClientInit(c, claims.UserID, h.manager)
}
