// Package handler 提供 HTTP 请求处理器
// 本文件处理用户相关的 API 请求
package handler

import (
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户请求处理器
// 通过构造函数注入 UserService，遵循依赖倒置原则
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建用户处理器实例
// userSvc: 用户服务接口
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// GetMe 获取当前登录用户信息
// GET /users/me
// 响应: respond.UserInfoRespond
func (h *UserHandler) GetMe(c *gin.Context) {
	data, err := h.userSvc.GetUserInfo(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateMe 更新当前登录用户资料
// PUT /users/me
// 请求体: request.UpdateProfileRequest
// 响应: respond.UserInfoRespond (更新后的资料)
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.userSvc.UpdateProfile(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUser 获取指定用户信息
// GET /users/:id
// 响应: respond.UserInfoRespond
func (h *UserHandler) GetUser(c *gin.Context) {
	data, err := h.userSvc.GetUserInfo(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserList 获取用户列表（排除当前用户）
// GET /users
// 响应: []respond.UserSummaryRespond
func (h *UserHandler) GetUserList(c *gin.Context) {
	data, err := h.userSvc.GetUserList(currentUserId(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// SetUsersStatus 批量启用/禁用用户
// POST /users/admin/setStatus (需要管理员权限)
// 请求体: request.SetUsersStatusRequest
// 响应: nil
func (h *UserHandler) SetUsersStatus(c *gin.Context) {
	var req request.SetUsersStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.SetUsersStatus(req.UuidList, req.Status); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeleteUsers 批量注销用户
// POST /users/admin/delete (需要管理员权限)
// 请求体: request.DeleteUsersRequest
// 响应: nil
//
// 级联清理该用户的连接记录、群成员关系、技能和项目条目
func (h *UserHandler) DeleteUsers(c *gin.Context) {
	var req request.DeleteUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	if err := h.userSvc.DeleteUsers(req.UuidList); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
