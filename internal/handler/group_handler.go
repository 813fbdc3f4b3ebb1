// Package handler 提供 HTTP 请求处理器
// 本文件处理群组相关的 API 请求
package handler

import (
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler 群组请求处理器
type GroupHandler struct {
	groupSvc service.GroupService
}

// NewGroupHandler 创建群组处理器实例
func NewGroupHandler(groupSvc service.GroupService) *GroupHandler {
	return &GroupHandler{groupSvc: groupSvc}
}

// CreateGroup 创建群组
// POST /messages/groups
// 请求体: request.CreateGroupRequest
// 响应: respond.GroupRespond
//
// 创建者自动入群，Members 中的重复项会被去重
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req request.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.groupSvc.CreateGroup(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetGroupDetail 获取群组详情（含成员列表）
// GET /messages/groups/:id
// 响应: respond.GroupRespond
func (h *GroupHandler) GetGroupDetail(c *gin.Context) {
	data, err := h.groupSvc.GetGroupDetail(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// AddMembers 添加群成员（仅创建者可操作）
// POST /messages/groups/:id/members
// 请求体: request.AddGroupMembersRequest
// 响应: nil
func (h *GroupHandler) AddMembers(c *gin.Context) {
	var req request.AddGroupMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.groupSvc.AddMembers(c.Param("id"), currentUserId(c), req.Members); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// RemoveMember 移除群成员
// DELETE /messages/groups/:id/members/:userId
// 响应: nil
//
// 创建者可移除任何成员，普通成员仅可移除自己（退群）
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	err := h.groupSvc.RemoveMember(c.Param("id"), currentUserId(c), c.Param("userId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
