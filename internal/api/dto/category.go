package dto

import (
	"Blogicum/internal/pkg/pagination"
	"time"
)

type CategoryFormDTO struct {
	Title       string `json:"title" binding:"required,max=256"`
	Description string `json:"description" binding:"required"`
	Slug        string `json:"slug" binding:"omitempty,max=64,slug"`
	IsPublished *bool  `json:"is_published"`
}

type CategoryDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryFeedDTO 分类页：分类信息及其下帖子
type CategoryFeedDTO struct {
	Category *CategoryDTO               `json:"category"`
	Posts    *pagination.Page[*PostDTO] `json:"posts"`
}
