package repository

import (
	"time"

	"gorm.io/gorm"
)

// PostFilter 帖子列表的筛选条件
type PostFilter struct {
	AuthorID   *uint64
	CategoryID *uint64
	// PublicOnly 仅返回对所有访客可见的帖子
	PublicOnly bool
	Now        time.Time
}

// PubliclyVisible 已发布、发布时间不晚于 now、未关联分类或所属分类已发布
func PubliclyVisible(now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("(posts.category_id IS NULL OR categories.is_published = ?)", true)
	}
}

func (f PostFilter) apply(db *gorm.DB) *gorm.DB {
	if f.AuthorID != nil {
		db = db.Where("posts.author_id = ?", *f.AuthorID)
	}
	if f.CategoryID != nil {
		db = db.Where("posts.category_id = ?", *f.CategoryID)
	}
	if f.PublicOnly {
		db = db.Scopes(PubliclyVisible(f.Now))
	}
	return db
}

// withCommentCount 附加实时评论数
func withCommentCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count")
}

// latestFirst 按发布时间倒序，同一时刻按主键倒序保证稳定
func latestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("posts.pub_date DESC").Order("posts.id DESC")
}
