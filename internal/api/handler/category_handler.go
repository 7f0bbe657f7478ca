package handler

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/api/middleware"
	"Blogicum/internal/pkg/response"
	"Blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categorySvc: categorySvc}
}

// ListPublished 公开分类列表，按标题排序
func (s *CategoryHandler) ListPublished(c *gin.Context) {
	res, err := s.categorySvc.ListPublished(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CategoryHandler) ListAll(c *gin.Context) {
	res, err := s.categorySvc.ListAll(c.Request.Context(), middleware.Viewer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryFormDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := s.categorySvc.CreateCategory(c.Request.Context(), middleware.Viewer(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "category_id", service.ErrCategoryNotFound)
	if !ok {
		return
	}

	var req dto.CategoryFormDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := s.categorySvc.UpdateCategory(c.Request.Context(), middleware.Viewer(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "category_id", service.ErrCategoryNotFound)
	if !ok {
		return
	}

	if err := s.categorySvc.DeleteCategory(c.Request.Context(), middleware.Viewer(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
