package middleware

import (
	"net/http"

	"devconnect_server/internal/dao/mysql/repository"

	"github.com/gin-gonic/gin"
)

// AdminAuth 管理员校验中间件
// 必须在 JWTAuth 之后挂载，依赖上下文中的 user_id
func AdminAuth(repos *repository.Repositories) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetString("user_id")
		user, err := repos.User.FindByUuid(userId)
		if err != nil || user.IsAdmin != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "仅管理员可以访问此接口",
			})
			return
		}
		c.Next()
	}
}
