// Package handler 提供 HTTP 请求处理器
// 本文件处理个人主页（技能/项目）相关的 API 请求
package handler

import (
	"devconnect_server/internal/dto/request"
	"devconnect_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler 个人主页请求处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler 创建个人主页处理器实例
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// GetProfile 获取个人主页（用户资料+技能+项目）
// GET /profiles/:userId
// 响应: respond.ProfileRespond
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	data, err := h.profileSvc.GetProfile(c.Param("userId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// ListSkills 获取指定用户的技能列表
// GET /skills/:userId
// 响应: []respond.SkillRespond
func (h *ProfileHandler) ListSkills(c *gin.Context) {
	data, err := h.profileSvc.ListSkills(c.Param("userId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateSkill 创建技能条目
// POST /skills
// 请求体: request.SaveSkillRequest
// 响应: respond.SkillRespond
func (h *ProfileHandler) CreateSkill(c *gin.Context) {
	var req request.SaveSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.profileSvc.CreateSkill(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// UpdateSkill 更新技能条目（仅所有者可操作）
// PUT /skills/:id
// 请求体: request.SaveSkillRequest
// 响应: respond.SkillRespond
func (h *ProfileHandler) UpdateSkill(c *gin.Context) {
	var req request.SaveSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.profileSvc.UpdateSkill(currentUserId(c), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteSkill 删除技能条目（仅所有者可操作）
// DELETE /skills/:id
// 响应: nil
func (h *ProfileHandler) DeleteSkill(c *gin.Context) {
	if err := h.profileSvc.DeleteSkill(currentUserId(c), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// ListProjects 获取指定用户的项目列表
// GET /projects/:userId
// 响应: []respond.ProjectRespond
func (h *ProfileHandler) ListProjects(c *gin.Context) {
	data, err := h.profileSvc.ListProjects(c.Param("userId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CreateProject 创建项目条目
// POST /projects
// 请求体: request.SaveProjectRequest
// 响应: respond.ProjectRespond
func (h *ProfileHandler) CreateProject(c *gin.Context) {
	var req request.SaveProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.profileSvc.CreateProject(currentUserId(c), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleCreated(c, data)
}

// UpdateProject 更新项目条目（仅所有者可操作）
// PUT /projects/:id
// 请求体: request.SaveProjectRequest
// 响应: respond.ProjectRespond
func (h *ProfileHandler) UpdateProject(c *gin.Context) {
	var req request.SaveProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := h.profileSvc.UpdateProject(currentUserId(c), c.Param("id"), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// DeleteProject 删除项目条目（仅所有者可操作）
// DELETE /projects/:id
// 响应: nil
func (h *ProfileHandler) DeleteProject(c *gin.Context) {
	if err := h.profileSvc.DeleteProject(currentUserId(c), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
