package middleware

import (
	"Blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，失败或缺失则为匿名访客
func AuthOptionalMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := service.Anonymous()
		if token, ok := bearerToken(c); ok {
			if v, err := authn.Authenticate(c.Request.Context(), token); err == nil {
				viewer = v
			}
		}
		setViewer(c, viewer)
		c.Next()
	}
}
