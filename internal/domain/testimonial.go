package domain

import (
	"time"

	"gorm.io/gorm"
)

// Testimonial is a visitor review shown on the marketing pages once approved.
type Testimonial struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	Company   *string    `gorm:"size:255" json:"company,omitempty"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Rating    int        `gorm:"not null" json:"rating"`
	Approved  bool       `gorm:"default:false;index" json:"approved"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for Testimonial
func (Testimonial) TableName() string {
	return "testimonials"
}

// BeforeCreate hook
func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	t.CreatedAt = time.Now().UTC()
	return nil
}

// BeforeUpdate hook
func (t *Testimonial) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now().UTC()
	t.UpdatedAt = &now
	return nil
}
