package api

import (
	"Blogicum/internal/api/middleware"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/security"
	"Blogicum/internal/pkg/util"
	"io"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterDeps 路由依赖
type RouterDeps struct {
	Group          *HandlersGroup
	Authn          middleware.Authenticator
	Logger         *log.Logger
	AccessLog      io.Writer
	TrustedProxies []string
}

func SetupRouter(deps RouterDeps) *gin.Engine {
	util.Validator()

	r := gin.New()
	_ = r.SetTrustedProxies(deps.TrustedProxies)

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware(deps.Logger))
	r.Use(middleware.AuditMiddleware(deps.Logger))
	r.Use(middleware.CORSMiddleware())
	accessLog := deps.AccessLog
	if accessLog == nil {
		accessLog = io.Discard
	}
	logger.SetupGin(r, accessLog)

	group := deps.Group
	authRequired := middleware.AuthMiddleware(deps.Authn)
	authOptional := middleware.AuthOptionalMiddleware(deps.Authn)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)
			authGroup.POST("/logout", authRequired, group.UserHandler.Logout)
		}

		readGroup := apiGroup.Group("")
		readGroup.Use(authOptional)
		{
			readGroup.GET("/posts", group.PostHandler.ListFeed)
			readGroup.GET("/posts/:post_id", group.PostHandler.GetPost)
			readGroup.GET("/category/:slug", group.PostHandler.ListCategory)
			readGroup.GET("/profile/:username", group.PostHandler.ListProfile)
			readGroup.GET("/categories", group.CategoryHandler.ListPublished)
			readGroup.GET("/locations", group.LocationHandler.ListPublished)
		}

		writeGroup := apiGroup.Group("")
		writeGroup.Use(authRequired)
		{
			writeGroup.POST("/posts", group.PostHandler.CreatePost)
			writeGroup.PUT("/posts/:post_id", group.PostHandler.UpdatePost)
			writeGroup.DELETE("/posts/:post_id", group.PostHandler.DeletePost)

			writeGroup.POST("/posts/:post_id/comments", group.CommentHandler.AddComment)
			writeGroup.GET("/posts/:post_id/comments/:comment_id", group.CommentHandler.GetComment)
			writeGroup.PUT("/posts/:post_id/comments/:comment_id", group.CommentHandler.UpdateComment)
			writeGroup.DELETE("/posts/:post_id/comments/:comment_id", group.CommentHandler.DeleteComment)

			writeGroup.POST("/media/upload", group.MediaHandler.Upload)
		}

		// 需要登录 & 拥有 admin 角色
		adminGroup := apiGroup.Group("/admin")
		adminGroup.Use(authRequired, middleware.CheckRoles(security.RoleAdmin))
		{
			adminGroup.GET("/categories", group.CategoryHandler.ListAll)
			adminGroup.POST("/categories", group.CategoryHandler.Create)
			adminGroup.PUT("/categories/:category_id", group.CategoryHandler.Update)
			adminGroup.DELETE("/categories/:category_id", group.CategoryHandler.Delete)

			adminGroup.GET("/locations", group.LocationHandler.ListAll)
			adminGroup.POST("/locations", group.LocationHandler.Create)
			adminGroup.PUT("/locations/:location_id", group.LocationHandler.Update)
			adminGroup.DELETE("/locations/:location_id", group.LocationHandler.Delete)
		}
	}

	return r
}
