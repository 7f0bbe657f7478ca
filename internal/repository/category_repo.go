package repository

import (
	"Blogicum/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CategoryRepo interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, id uint64) (*model.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Category, error)
	ListCategories(ctx context.Context, publishedOnly bool) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id uint64) error
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepo {
	return &categoryRepoImpl{
		db: db,
	}
}

func (s *categoryRepoImpl) CreateCategory(ctx context.Context, category *model.Category) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(category).Error, "create category")
}

func (s *categoryRepoImpl) GetCategory(ctx context.Context, id uint64) (*model.Category, error) {
	var category model.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, errors.Wrap(notFoundAsNil(err), "get category")
	}
	return &category, nil
}

func (s *categoryRepoImpl) GetCategoryBySlug(ctx context.Context, slug string, publishedOnly bool) (*model.Category, error) {
	var category model.Category
	db := s.db.WithContext(ctx).Where("slug = ?", slug)
	if publishedOnly {
		db = db.Where("is_published = ?", true)
	}
	if err := db.First(&category).Error; err != nil {
		return nil, errors.Wrap(notFoundAsNil(err), "get category by slug")
	}
	return &category, nil
}

func (s *categoryRepoImpl) ListCategories(ctx context.Context, publishedOnly bool) ([]*model.Category, error) {
	categories := make([]*model.Category, 0)
	db := s.db.WithContext(ctx)
	if publishedOnly {
		db = db.Where("is_published = ?", true)
	}
	if err := db.Order("title ASC").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}

func (s *categoryRepoImpl) UpdateCategory(ctx context.Context, category *model.Category) error {
	err := s.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{
			"title":        category.Title,
			"description":  category.Description,
			"slug":         category.Slug,
			"is_published": category.IsPublished,
		}).Error
	return errors.Wrap(err, "update category")
}

// DeleteCategory 删除分类，其下帖子的分类置空
func (s *categoryRepoImpl) DeleteCategory(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, id).Error
	})
	return errors.Wrap(err, "delete category")
}
