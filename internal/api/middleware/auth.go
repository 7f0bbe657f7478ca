package middleware

import (
	"Blogicum/internal/pkg/consts"
	"Blogicum/internal/pkg/response"
	"Blogicum/internal/service"
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

const tokenKey = "token"

// Authenticator 由 Token 还原访客身份
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (service.Viewer, error)
}

// AuthMiddleware 负责验证 JWT 并将访客身份注入 Context
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		viewer, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrTokenInvalid) {
				response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			} else {
				response.Fail(c, response.InternalServerError, "未知错误")
			}
			c.Abort()
			return
		}

		c.Set(tokenKey, token)
		setViewer(c, viewer)
		c.Next()
	}
}

// Viewer 取出当前请求的访客身份，未登录时为匿名
func Viewer(c *gin.Context) service.Viewer {
	if v, ok := c.Get(consts.ViewerKey); ok {
		if viewer, ok := v.(service.Viewer); ok {
			return viewer
		}
	}
	return service.Anonymous()
}

// Token 取出 AuthMiddleware 校验过的原始 Token
func Token(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	return token, token != ""
}

func setViewer(c *gin.Context, viewer service.Viewer) {
	c.Set(consts.ViewerKey, viewer)
	c.Set(consts.UserIDKey, viewer.UserID)
	c.Set(consts.UsernameKey, viewer.Username)
	c.Set(consts.RolesKey, viewer.Roles)
}
