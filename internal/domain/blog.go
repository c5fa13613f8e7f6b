package domain

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is an article on the company blog.
type BlogPost struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Author      string     `gorm:"size:255" json:"author"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for BlogPost
func (BlogPost) TableName() string {
	return "blog_posts"
}

// BeforeSave stamps PublishedAt the first time a post goes live.
func (b *BlogPost) BeforeSave(tx *gorm.DB) error {
	if b.Published && b.PublishedAt == nil {
		now := time.Now().UTC()
		b.PublishedAt = &now
	}
	return nil
}

// BeforeCreate hook
func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	b.CreatedAt = time.Now().UTC()
	return nil
}

// BeforeUpdate hook
func (b *BlogPost) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now().UTC()
	b.UpdatedAt = &now
	return nil
}
