package dto

import "time"

type CommentFormDTO struct {
	Text string `json:"text" binding:"required"`
}

type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Author    AuthorDTO `json:"author" copier:"-"`
}
