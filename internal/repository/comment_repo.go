package repository

import (
	"Blogicum/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, postID, commentID uint64) (*model.Comment, error)
	ListCommentsByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error)
	CountCommentsByPostID(ctx context.Context, postID uint64) (int64, error)
	UpdateCommentText(ctx context.Context, commentID uint64, text string) error
	DeleteComment(ctx context.Context, commentID uint64) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return errors.Wrap(s.db.WithContext(ctx).Omit("Post", "Author").Create(comment).Error, "create comment")
}

// GetComment 获取属于指定帖子的评论，不存在或不属于该帖子时返回 nil
func (s *CommentRepoImpl) GetComment(ctx context.Context, postID, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("id = ? AND post_id = ?", commentID, postID).
		First(&comment).Error
	if err != nil {
		return nil, errors.Wrap(notFoundAsNil(err), "get comment")
	}
	return &comment, nil
}

// ListCommentsByPostID 帖子的全部评论，按创建时间正序
func (s *CommentRepoImpl) ListCommentsByPostID(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "list comments")
	}
	return comments, nil
}

func (s *CommentRepoImpl) CountCommentsByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, errors.Wrap(err, "count comments")
}

func (s *CommentRepoImpl) UpdateCommentText(ctx context.Context, commentID uint64, text string) error {
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("text", text).Error
	return errors.Wrap(err, "update comment")
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return errors.Wrap(s.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error, "delete comment")
}
