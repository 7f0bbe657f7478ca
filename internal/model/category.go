package model

import (
	"Blogicum/internal/pkg/util"
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(256);not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Slug        string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_category_slug" json:"slug"`
	IsPublished bool      `gorm:"not null" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// BeforeSave 未指定 slug 时由标题生成
func (c *Category) BeforeSave(_ *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = util.Slugify(c.Title)
	}
	return nil
}
