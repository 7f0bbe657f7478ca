package minio

import (
	"Blogicum/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const publicReadPolicy = `{
  "Version": "2012-10-17",
  "Statement": [{
    "Effect": "Allow",
    "Principal": {"AWS": ["*"]},
    "Action": ["s3:GetObject"],
    "Resource": ["arn:aws:s3:::%s/*"]
  }]
}`

// Storage 帖子图片所在的对象存储
type Storage struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
	publicSSL      bool
}

// NewStorage 初始化 MinIO 客户端，并确保存储桶存在且可公开读取
func NewStorage(ctx context.Context, cfg config.MinIOConfig, l *log.Logger) (*Storage, error) {
	var endpoint string
	var useSSL bool
	if cfg.InternalEndpoint != "" {
		endpoint = cfg.InternalEndpoint
		useSSL = cfg.InternalUseSSL
	} else {
		endpoint = cfg.ExternalEndpoint
		useSSL = cfg.ExternalUseSSL
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize minio client: %w", err)
	}

	publicEndpoint := cfg.ExternalEndpoint
	if publicEndpoint == "" {
		publicEndpoint = endpoint
	}
	s := &Storage{
		client:         client,
		bucket:         cfg.Bucket,
		publicEndpoint: publicEndpoint,
		publicSSL:      cfg.ExternalUseSSL,
	}
	if err = s.ensureBucket(ctx, l); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) ensureBucket(ctx context.Context, l *log.Logger) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("创建存储桶失败: %w", err)
		}
		l.Info("已创建存储桶", "bucket", s.bucket)
	}

	if err = s.client.SetBucketPolicy(ctx, s.bucket, fmt.Sprintf(publicReadPolicy, s.bucket)); err != nil {
		return fmt.Errorf("设置存储桶策略失败: %w", err)
	}
	return nil
}
