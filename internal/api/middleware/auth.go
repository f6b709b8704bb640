package middleware

import (
	"Birrapp/internal/pkg/response"
	"Birrapp/internal/service"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserIDKey   = "user_id"
	UserNameKey = "user_name"
)

// AuthMiddleware 解析会话令牌并将用户身份注入 Context，未解析出会话一律 401
func AuthMiddleware(sessionSvc service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		identity, err := sessionSvc.Resolve(c.Request.Context(), token)
		if err != nil {
			response.Fail(c, response.InternalServerError, service.UnExpectedError.Error())
			c.Abort()
			return
		}
		if identity == nil {
			response.Fail(c, response.Unauthorized, service.ErrUnauthorized.Error())
			c.Abort()
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(UserNameKey, identity.Name)

		newCtx := context.WithValue(c.Request.Context(), UserIDKey, identity.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
