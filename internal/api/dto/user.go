package dto

import (
	"Blogicum/internal/pkg/pagination"
	"time"
)

// RegisterDTO 注册
type RegisterDTO struct {
	Username  string `json:"username" binding:"required,min=1,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Email     string `json:"email" binding:"omitempty,email,max=254"`
	FirstName string `json:"first_name" binding:"omitempty,max=150"`
	LastName  string `json:"last_name" binding:"omitempty,max=150"`
}

// LoginDTO 登录
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserDTO 用户公开信息
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileDTO 个人主页
type ProfileDTO struct {
	User  *UserDTO                   `json:"user"`
	Posts *pagination.Page[*PostDTO] `json:"posts"`
}
