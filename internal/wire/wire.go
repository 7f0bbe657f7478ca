package wire

import (
	"Blogicum/internal/api"
	"Blogicum/internal/api/config"
	"Blogicum/internal/api/handler"
	"Blogicum/internal/job"
	"Blogicum/internal/pkg/cron"
	"Blogicum/internal/pkg/minio"
	"Blogicum/internal/pkg/redis"
	"Blogicum/internal/pkg/security"
	"Blogicum/internal/repository"
	"Blogicum/internal/service"
	"io"
	log "log/slog"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(cfg *config.Config, db *gorm.DB, rdb *goredis.Client, storage *minio.Storage, accessLog io.Writer, l *log.Logger) *ApplicationContainer {
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	tokens := security.NewTokenManager(cfg.JWT)
	mediaService := service.NewMediaService(storage, redis.NewMediaTempStore(rdb, l), cfg.Media, l)
	userService := service.NewUserService(userRepo, tokens, redis.NewTokenBlacklist(rdb), l)
	postService := service.NewPostService(postRepo, commentRepo, categoryRepo, locationRepo, userRepo, mediaService, l)
	commentService := service.NewCommentService(postRepo, commentRepo, l)
	categoryService := service.NewCategoryService(categoryRepo, l)
	locationService := service.NewLocationService(locationRepo, l)

	handlers := &api.HandlersGroup{
		UserHandler:     handler.NewUserHandler(userService),
		PostHandler:     handler.NewPostHandler(postService),
		CommentHandler:  handler.NewCommentHandler(commentService),
		CategoryHandler: handler.NewCategoryHandler(categoryService),
		LocationHandler: handler.NewLocationHandler(locationService),
		MediaHandler:    handler.NewMediaHandler(mediaService),
	}

	router := api.SetupRouter(api.RouterDeps{
		Group:          handlers,
		Authn:          userService,
		Logger:         l,
		AccessLog:      accessLog,
		TrustedProxies: cfg.Server.TrustedProxies,
	})

	cronMgr := cron.NewCronManager(cfg.Media.CleanupSpec, job.NewMediaCleanupJob(mediaService, l), l)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}
}
