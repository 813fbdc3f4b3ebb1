// Package handler 提供 HTTP 请求处理器
// 本文件处理会话和消息相关的 API 请求
package handler

import (
	"strconv"

	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/service"
	"devconnect_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	chatSvc service.ChatService
}

// NewMessageHandler 创建消息处理器实例
func NewMessageHandler(chatSvc service.ChatService) *MessageHandler {
	return &MessageHandler{chatSvc: chatSvc}
}

// ListChats 获取会话列表
// GET /messages/chats
// 响应: []respond.ChatThreadRespond
//
// 单聊会话和群聊会话合并返回，按最近活跃时间倒序
func (h *MessageHandler) ListChats(c *gin.Context) {
	data, err := h.chatSvc.ListChats(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetMessages 获取单个会话的历史消息
// GET /messages/messages/:chatId?isGroup=false&page=1&limit=50
// 响应: []respond.MessageRespond (页内时间正序)
//
// 副作用：将该会话中来自对方的未读消息标记为已读
func (h *MessageHandler) GetMessages(c *gin.Context) {
	isGroup := c.Query("isGroup") == "true"
	// 分页参数非法时回落到默认值，由 Service 层统一兜底
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	data, err := h.chatSvc.GetMessages(currentUserId(c), c.Param("chatId"), isGroup, page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SendMessage 发送单聊或群聊消息
// POST /messages/send
// 请求体: request.SendMessageRequest
// 响应: respond.MessageRespond
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req request.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.chatSvc.SendMessage(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// MarkRead 将单条消息标记为已读（仅接收方可操作）
// PUT /messages/read/:messageId
// 响应: nil
func (h *MessageHandler) MarkRead(c *gin.Context) {
	// 消息 ID 为雪花算法生成的 int64
	messageUuid, err := strconv.ParseInt(c.Param("messageId"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "消息ID格式错误"))
		return
	}
	if err := h.chatSvc.MarkRead(currentUserId(c), messageUuid); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
