package redis

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/pkg/consts"
	"Blogicum/internal/pkg/logger"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// TokenBlacklist 已注销 Token 的签名黑名单，过期时间与 Token 剩余有效期一致
type TokenBlacklist struct {
	rdb *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

// Revoke 将签名加入黑名单
func (s *TokenBlacklist) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, consts.TokenBlacklistKey+signature, 1, ttl).Err()
}

// IsRevoked 判断签名是否已被注销
func (s *TokenBlacklist) IsRevoked(ctx context.Context, signature string) (bool, error) {
	_, err := s.rdb.Get(ctx, consts.TokenBlacklistKey+signature).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MediaTempStore 已上传但尚未挂到帖子上的文件，存于同一个 hash 中
type MediaTempStore struct {
	rdb *redis.Client
	l   *log.Logger
}

func NewMediaTempStore(rdb *redis.Client, l *log.Logger) *MediaTempStore {
	return &MediaTempStore{rdb: rdb, l: l}
}

func (s *MediaTempStore) Add(ctx context.Context, fileKey string, meta dto.MediaTempMetadata) error {
	metaBytes, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return s.rdb.HSet(ctx, consts.MediaTempKey, fileKey, string(metaBytes)).Err()
}

// Get 不存在时返回 nil
func (s *MediaTempStore) Get(ctx context.Context, fileKey string) (*dto.MediaTempMetadata, error) {
	val, err := s.rdb.HGet(ctx, consts.MediaTempKey, fileKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var meta dto.MediaTempMetadata
	if err = json.Unmarshal([]byte(val), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *MediaTempStore) Remove(ctx context.Context, fileKeys ...string) error {
	if len(fileKeys) == 0 {
		return nil
	}
	return s.rdb.HDel(ctx, consts.MediaTempKey, fileKeys...).Err()
}

// All 返回全部待认领文件，格式损坏的条目以零值返回，清理任务会将其视为已过期
func (s *MediaTempStore) All(ctx context.Context) (map[string]dto.MediaTempMetadata, error) {
	raw, err := s.rdb.HGetAll(ctx, consts.MediaTempKey).Result()
	if err != nil {
		return nil, err
	}
	res := make(map[string]dto.MediaTempMetadata, len(raw))
	for fileKey, val := range raw {
		var meta dto.MediaTempMetadata
		if err = json.Unmarshal([]byte(val), &meta); err != nil {
			logger.FromContext(ctx, s.l).WarnContext(ctx, "corrupt media record", "fileKey", fileKey, "err", err)
			meta = dto.MediaTempMetadata{}
		}
		res[fileKey] = meta
	}
	return res, nil
}
