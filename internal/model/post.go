package model

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(256);not null" json:"title"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	PubDate     time.Time `gorm:"not null;index:idx_pub_date" json:"pub_date"`
	AuthorID    uint64    `gorm:"not null;index:idx_author_id" json:"author_id"`
	LocationID  *uint64   `gorm:"index:idx_location_id" json:"location_id"`
	CategoryID  *uint64   `gorm:"index:idx_category_id" json:"category_id"`
	IsPublished bool      `gorm:"not null" json:"is_published"`
	Image       *string   `gorm:"type:varchar(512)" json:"image"`
	CreatedAt   time.Time `json:"created_at"`

	// 查询时计算，不落库
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`

	// 关联关系
	Author   User      `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Category *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Location *Location `gorm:"foreignKey:LocationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (Post) TableName() string {
	return "posts"
}

// BeforeCreate 未指定发布时间时取写入时刻
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PubDate.IsZero() {
		p.PubDate = tx.NowFunc()
	}
	return nil
}

func (p *Post) OwnerID() uint64 {
	return p.AuthorID
}

// IsPubliclyVisible 已发布、发布时间已到、所属分类（若有）已发布
func (p *Post) IsPubliclyVisible(now time.Time) bool {
	if !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil && (p.Category == nil || !p.Category.IsPublished) {
		return false
	}
	return true
}
