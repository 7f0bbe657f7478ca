package job

import (
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const mediaCleanupTimeout = 5 * time.Minute

// MediaCleanupJob 清理上传后长时间未被帖子引用的图片
type MediaCleanupJob struct {
	mediaSvc service.MediaService
	l        *log.Logger
}

func NewMediaCleanupJob(mediaSvc service.MediaService, l *log.Logger) *MediaCleanupJob {
	return &MediaCleanupJob{
		mediaSvc: mediaSvc,
		l:        l,
	}
}

func (s *MediaCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), mediaCleanupTimeout)
	defer cancel()
	ctx = logger.WithTraceID(ctx, "job-"+uuid.NewString())
	ctx = logger.NewContext(ctx, s.l)

	s.l.InfoContext(ctx, "start media cleanup job")
	count, err := s.mediaSvc.CleanupExpired(ctx)
	if err != nil {
		s.l.ErrorContext(ctx, "media cleanup job failed", "err", err)
		return
	}
	if count > 0 {
		s.l.InfoContext(ctx, "media cleanup job finished", "cleaned_count", count)
	}
}
