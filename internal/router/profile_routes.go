package router

import (
	"devconnect_server/internal/handler"
	"devconnect_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterProfileRoutes 注册个人主页（技能/项目）相关路由（需要认证）
func RegisterProfileRoutes(r *gin.Engine, h *handler.Handlers) {
	profileGroup := r.Group("/profiles")
	profileGroup.Use(middleware.JWTAuth())
	{
		profileGroup.GET("/:userId", h.Profile.GetProfile) // 聚合主页
	}

	skillGroup := r.Group("/skills")
	skillGroup.Use(middleware.JWTAuth())
	{
		skillGroup.POST("", h.Profile.CreateSkill)
		skillGroup.GET("/:userId", h.Profile.ListSkills)
		skillGroup.PUT("/:id", h.Profile.UpdateSkill)
		skillGroup.DELETE("/:id", h.Profile.DeleteSkill)
	}

	projectGroup := r.Group("/projects")
	projectGroup.Use(middleware.JWTAuth())
	{
		projectGroup.POST("", h.Profile.CreateProject)
		projectGroup.GET("/:userId", h.Profile.ListProjects)
		projectGroup.PUT("/:id", h.Profile.UpdateProject)
		projectGroup.DELETE("/:id", h.Profile.DeleteProject)
	}
}
