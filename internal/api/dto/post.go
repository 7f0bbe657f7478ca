package dto

import (
	"time"
)

// PostFormDTO 创建与编辑帖子
type PostFormDTO struct {
	Title       string     `json:"title" binding:"required,max=256"`
	Text        string     `json:"text" binding:"required"`
	PubDate     *time.Time `json:"pub_date"`
	CategoryID  *uint64    `json:"category_id"`
	LocationID  *uint64    `json:"location_id"`
	IsPublished *bool      `json:"is_published"`
	// Image 上传接口返回的文件 key
	Image       *string `json:"image" binding:"omitempty,max=512"`
	RemoveImage bool    `json:"remove_image"`
}

type AuthorDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

type PostCategoryDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type PostLocationDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type PostDTO struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	PubDate      time.Time `json:"pub_date"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int64     `json:"comment_count"`

	Author   AuthorDTO        `json:"author" copier:"-"`
	Category *PostCategoryDTO `json:"category,omitempty" copier:"-"`
	Location *PostLocationDTO `json:"location,omitempty" copier:"-"`
	ImageURL string           `json:"image_url,omitempty"`
}

// PostDetailDTO 帖子详情及全部评论
type PostDetailDTO struct {
	Post     *PostDTO      `json:"post"`
	Comments []*CommentDTO `json:"comments"`
}

// PostMutationDTO 写操作结果
type PostMutationDTO struct {
	Post *PostDTO `json:"post"`
	NextViewDTO
}
