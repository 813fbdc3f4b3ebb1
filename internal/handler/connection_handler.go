// Package handler 提供 HTTP 请求处理器
// 本文件处理连接请求相关的 API 请求
package handler

import (
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ConnectionHandler 连接请求处理器
type ConnectionHandler struct {
	connSvc service.ConnectionService
}

// NewConnectionHandler 创建连接处理器实例
func NewConnectionHandler(connSvc service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connSvc: connSvc}
}

// SendRequest 发起连接申请
// POST /connections/request
// 请求体: request.SendConnectionRequest
// 响应: respond.ConnectionRespond
func (h *ConnectionHandler) SendRequest(c *gin.Context) {
	var req request.SendConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.connSvc.Request(currentUserId(c), req.RecipientId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// Respond 接受或拒绝连接申请（仅接收方可操作）
// PUT /connections/respond/:id
// 请求体: request.RespondConnectionRequest
// 响应: respond.ConnectionRespond
func (h *ConnectionHandler) Respond(c *gin.Context) {
	var req request.RespondConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.connSvc.Respond(c.Param("id"), currentUserId(c), req.Action)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Remove 删除连接记录（任一方可操作，删除后可重新发起申请）
// DELETE /connections/remove/:id
// 响应: nil
func (h *ConnectionHandler) Remove(c *gin.Context) {
	if err := h.connSvc.Remove(c.Param("id"), currentUserId(c)); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// Discover 发现可建立连接的用户
// GET /connections/discover
// 响应: []respond.UserSummaryRespond
//
// 排除自己以及任何已有连接记录（含申请中和已拒绝）的对端
func (h *ConnectionHandler) Discover(c *gin.Context) {
	data, err := h.connSvc.Discover(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Status 查询与指定用户之间的连接状态
// GET /connections/status/:userId
// 响应: respond.ConnectionStatusRespond
func (h *ConnectionHandler) Status(c *gin.Context) {
	data, err := h.connSvc.Status(currentUserId(c), c.Param("userId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// Stats 连接数量统计
// GET /connections/stats
// 响应: respond.ConnectionStatsRespond
func (h *ConnectionHandler) Stats(c *gin.Context) {
	data, err := h.connSvc.Stats(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
