package service

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/model"
	"Blogicum/internal/pkg/logger"
	"Blogicum/internal/pkg/util"
	"Blogicum/internal/repository"
	"context"
	log "log/slog"
	"strings"
)

// CategoryService 分类管理，写操作需要管理员身份
type CategoryService interface {
	ListPublished(ctx context.Context) ([]*dto.CategoryDTO, error)
	ListAll(ctx context.Context, viewer Viewer) ([]*dto.CategoryDTO, error)
	CreateCategory(ctx context.Context, viewer Viewer, req *dto.CategoryFormDTO) (*dto.CategoryDTO, error)
	UpdateCategory(ctx context.Context, viewer Viewer, id uint64, req *dto.CategoryFormDTO) (*dto.CategoryDTO, error)
	SetPublished(ctx context.Context, viewer Viewer, slug string, published bool) error
	DeleteCategory(ctx context.Context, viewer Viewer, id uint64) error
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
	l            *log.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepo, l *log.Logger) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		l:            l,
	}
}

func (s *categoryServiceImpl) ListPublished(ctx context.Context) ([]*dto.CategoryDTO, error) {
	return s.list(ctx, true)
}

func (s *categoryServiceImpl) ListAll(ctx context.Context, viewer Viewer) ([]*dto.CategoryDTO, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	return s.list(ctx, false)
}

// CreateCategory 未填写 slug 时由标题生成，slug 必须唯一
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, viewer Viewer, req *dto.CategoryFormDTO) (*dto.CategoryDTO, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	slug, err := s.resolveSlug(ctx, 0, req)
	if err != nil {
		return nil, err
	}

	category := &model.Category{
		Title:       req.Title,
		Description: req.Description,
		Slug:        slug,
		IsPublished: req.IsPublished == nil || *req.IsPublished,
	}
	if err = s.categoryRepo.CreateCategory(ctx, category); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrSlugExist
		}
		return nil, err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "category created", "slug", category.Slug)
	return toCategoryDTO(category)
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, viewer Viewer, id uint64, req *dto.CategoryFormDTO) (*dto.CategoryDTO, error) {
	if err := requireAdmin(viewer); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	slug, err := s.resolveSlug(ctx, id, req)
	if err != nil {
		return nil, err
	}

	category.Title = req.Title
	category.Description = req.Description
	category.Slug = slug
	if req.IsPublished != nil {
		category.IsPublished = *req.IsPublished
	}
	if err = s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrSlugExist
		}
		return nil, err
	}
	return toCategoryDTO(category)
}

// SetPublished 隐藏分类会使其下帖子从所有公开列表中消失
func (s *categoryServiceImpl) SetPublished(ctx context.Context, viewer Viewer, slug string, published bool) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	category, err := s.categoryRepo.GetCategoryBySlug(ctx, slug, false)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	category.IsPublished = published
	if err = s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		return err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "category visibility changed", "slug", slug, "published", published)
	return nil
}

// DeleteCategory 其下帖子保留，分类置空
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, viewer Viewer, id uint64) error {
	if err := requireAdmin(viewer); err != nil {
		return err
	}
	category, err := s.categoryRepo.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	if err = s.categoryRepo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx, s.l).InfoContext(ctx, "category deleted", "slug", category.Slug)
	return nil
}

func (s *categoryServiceImpl) list(ctx context.Context, publishedOnly bool) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		item, err := toCategoryDTO(category)
		if err != nil {
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}

// resolveSlug 显式 slug 优先，否则由标题生成；selfID 为正在编辑的分类
func (s *categoryServiceImpl) resolveSlug(ctx context.Context, selfID uint64, req *dto.CategoryFormDTO) (string, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = util.Slugify(req.Title)
	}
	if slug == "" {
		return "", ErrSlugEmpty
	}
	if !util.IsValidSlug(slug) {
		return "", ErrParamInvalid
	}

	existing, err := s.categoryRepo.GetCategoryBySlug(ctx, slug, false)
	if err != nil {
		return "", err
	}
	if existing != nil && existing.ID != selfID {
		return "", ErrSlugExist
	}
	return slug, nil
}
