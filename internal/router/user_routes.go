package router

import (
	"devconnect_server/internal/dao/mysql/repository"
	"devconnect_server/internal/handler"
	"devconnect_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由（需要认证）
func RegisterUserRoutes(r *gin.Engine, h *handler.Handlers, repos *repository.Repositories) {
	userGroup := r.Group("/users")
	userGroup.Use(middleware.JWTAuth())
	{
		// /users/me 必须注册在 /users/:id 之前，否则会被参数路由吞掉
		userGroup.GET("/me", h.User.GetMe)
		userGroup.PUT("/me", h.User.UpdateMe)
		userGroup.GET("", h.User.GetUserList)
		userGroup.GET("/:id", h.User.GetUser)

		// ===== 管理员接口 =====
		adminGroup := userGroup.Group("/admin")
		adminGroup.Use(middleware.AdminAuth(repos))
		{
			adminGroup.POST("/setStatus", h.User.SetUsersStatus) // 批量启用/禁用用户
			adminGroup.POST("/delete", h.User.DeleteUsers)       // 批量注销用户
		}
	}
}
