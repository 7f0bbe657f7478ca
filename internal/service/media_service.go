package service

import (
	"Blogicum/internal/api/config"
	"Blogicum/internal/api/dto"
	"Blogicum/internal/pkg/consts"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/util"
	"context"
	"io"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const uploadedImageMime = "image/jpeg"

// ObjectStorage 图片文件存储
type ObjectStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	DeleteFile(ctx context.Context, objectName string) error
	GetPublicURL(objectName string) string
}

// MediaTempStore 已上传但尚未被帖子引用的文件登记表
type MediaTempStore interface {
	Add(ctx context.Context, fileKey string, meta dto.MediaTempMetadata) error
	Get(ctx context.Context, fileKey string) (*dto.MediaTempMetadata, error)
	Remove(ctx context.Context, fileKeys ...string) error
	All(ctx context.Context) (map[string]dto.MediaTempMetadata, error)
}

// MediaService 帖子图片：先上传登记，创建或编辑帖子时认领，超时未认领的由定时任务清理
type MediaService interface {
	UploadImage(ctx context.Context, viewer Viewer, reader io.Reader, size int64) (*dto.MediaUploadDTO, error)
	CheckImage(ctx context.Context, viewer Viewer, fileKey string) error
	ClaimImage(ctx context.Context, viewer Viewer, fileKey string) error
	DiscardImage(ctx context.Context, fileKey string) error
	PublicURL(fileKey string) string
	CleanupExpired(ctx context.Context) (int, error)
}

type mediaServiceImpl struct {
	storage  ObjectStorage
	temp     MediaTempStore
	cfg      config.MediaConfig
	tempTTL  time.Duration
	l        *log.Logger
	now      func() time.Time
	newObjID func() string
}

func NewMediaService(storage ObjectStorage, temp MediaTempStore, cfg config.MediaConfig, l *log.Logger) MediaService {
	ttl := time.Duration(cfg.TempTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &mediaServiceImpl{
		storage:  storage,
		temp:     temp,
		cfg:      cfg,
		tempTTL:  ttl,
		l:        l,
		now:      utcNow,
		newObjID: uuid.NewString,
	}
}

// UploadImage 校验并压缩图片后上传，登记为待认领
func (s *mediaServiceImpl) UploadImage(ctx context.Context, viewer Viewer, reader io.Reader, size int64) (*dto.MediaUploadDTO, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrTokenInvalid
	}
	if s.cfg.MaxUploadBytes > 0 && size > s.cfg.MaxUploadBytes {
		return nil, ErrFileTooLarge
	}

	buf, dims, err := util.NormalizeImage(reader, s.cfg.MaxImageWidth)
	if err != nil {
		logger.FromContext(ctx, s.l).InfoContext(ctx, "rejected upload", "err", err)
		return nil, ErrFileNotSupported
	}

	now := s.now()
	fileKey := consts.ImageObjectPrefix + now.Format("2006/01/02/") + s.newObjID() + ".jpg"
	outSize := int64(buf.Len())
	if err = s.storage.UploadFile(ctx, fileKey, buf, outSize, uploadedImageMime); err != nil {
		return nil, err
	}

	meta := dto.MediaTempMetadata{
		MimeType:  uploadedImageMime,
		Width:     dims.X,
		Height:    dims.Y,
		OwnerID:   viewer.UserID,
		CreatedAt: now.Unix(),
	}
	if err = s.temp.Add(ctx, fileKey, meta); err != nil {
		_ = s.storage.DeleteFile(ctx, fileKey)
		return nil, err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "media upload success and metadata cached", "fileKey", fileKey)

	return &dto.MediaUploadDTO{
		Key:    fileKey,
		URL:    s.storage.GetPublicURL(fileKey),
		Mime:   uploadedImageMime,
		Width:  dims.X,
		Height: dims.Y,
		Size:   outSize,
	}, nil
}

// CheckImage 校验图片为本人上传且尚未被使用，不改变登记状态
func (s *mediaServiceImpl) CheckImage(ctx context.Context, viewer Viewer, fileKey string) error {
	meta, err := s.temp.Get(ctx, fileKey)
	if err != nil {
		return err
	}
	if meta == nil || meta.OwnerID != viewer.UserID {
		return ErrImageUnknown
	}
	return nil
}

// ClaimImage 帖子写入成功后调用，移出待清理登记
func (s *mediaServiceImpl) ClaimImage(ctx context.Context, viewer Viewer, fileKey string) error {
	if err := s.CheckImage(ctx, viewer, fileKey); err != nil {
		return err
	}
	return s.temp.Remove(ctx, fileKey)
}

func (s *mediaServiceImpl) DiscardImage(ctx context.Context, fileKey string) error {
	return s.storage.DeleteFile(ctx, fileKey)
}

func (s *mediaServiceImpl) PublicURL(fileKey string) string {
	return s.storage.GetPublicURL(fileKey)
}

// CleanupExpired 删除超过保留时长仍未被认领的文件，返回清理数量
func (s *mediaServiceImpl) CleanupExpired(ctx context.Context) (int, error) {
	l := logger.FromContext(ctx, s.l)

	allMedia, err := s.temp.All(ctx)
	if err != nil {
		return 0, err
	}

	deadline := s.now().Add(-s.tempTTL).Unix()
	count := 0
	for fileKey, meta := range allMedia {
		if meta.CreatedAt > deadline {
			continue
		}
		if err = s.storage.DeleteFile(ctx, fileKey); err != nil {
			l.ErrorContext(ctx, "failed to delete expired file", "fileKey", fileKey, "err", err)
			continue
		}
		if err = s.temp.Remove(ctx, fileKey); err != nil {
			l.ErrorContext(ctx, "failed to remove media record", "fileKey", fileKey, "err", err)
		}
		count++
		l.InfoContext(ctx, "cleanup expired media resource", "fileKey", fileKey)
	}
	return count, nil
}
