package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product is an item in the export catalogue.
type Product struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Category    string     `gorm:"size:100;index" json:"category"`
	Description string     `gorm:"type:text" json:"description"`
	Origin      string     `gorm:"size:255" json:"origin"`
	ImageURL    string     `gorm:"size:500" json:"imageUrl"`
	Featured    bool       `gorm:"default:false" json:"featured"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for Product
func (Product) TableName() string {
	return "products"
}

// BeforeCreate hook
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	p.CreatedAt = time.Now().UTC()
	return nil
}

// BeforeUpdate hook
func (p *Product) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now().UTC()
	p.UpdatedAt = &now
	return nil
}
