package job

import (
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/service"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubMedia struct {
	service.MediaService
	calls   int
	traceID string
	err     error
}

func (s *stubMedia) CleanupExpired(ctx context.Context) (int, error) {
	s.calls++
	s.traceID, _ = ctx.Value(logger.TraceIDKey).(string)
	return 2, s.err
}

func TestMediaCleanupJobRun(t *testing.T) {
	media := &stubMedia{}
	NewMediaCleanupJob(media, logger.Discard()).Run()

	assert.Equal(t, 1, media.calls)
	assert.Contains(t, media.traceID, "job-")
}

func TestMediaCleanupJobSwallowsErrors(t *testing.T) {
	media := &stubMedia{err: errors.New("minio down")}
	assert.NotPanics(t, func() {
		NewMediaCleanupJob(media, logger.Discard()).Run()
	})
	assert.Equal(t, 1, media.calls)
}
