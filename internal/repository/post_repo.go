package repository

import (
	"Blogicum/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	CountPosts(ctx context.Context, filter PostFilter) (int64, error)
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return errors.Wrap(s.db.WithContext(ctx).Omit("Author", "Category", "Location").Create(post).Error, "create post")
}

// GetPost 按主键获取帖子及作者、分类、地点，不存在时返回 nil
func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Scopes(withCommentCount).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, errors.Wrap(notFoundAsNil(err), "get post")
	}
	return &post, nil
}

func (s *PostRepoImpl) CountPosts(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Scopes(filter.apply).
		Count(&count).Error
	return count, errors.Wrap(err, "count posts")
}

// ListPosts 按发布时间倒序分页获取帖子，附带实时评论数
func (s *PostRepoImpl) ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0, limit)
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Scopes(filter.apply, withCommentCount, latestFirst).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	return posts, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":        post.Title,
			"text":         post.Text,
			"pub_date":     post.PubDate,
			"category_id":  post.CategoryID,
			"location_id":  post.LocationID,
			"is_published": post.IsPublished,
			"image":        post.Image,
		}).Error
	return errors.Wrap(err, "update post")
}

// DeletePost 删除帖子及其全部评论
func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
	return errors.Wrap(err, "delete post")
}
