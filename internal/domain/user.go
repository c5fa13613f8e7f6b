package domain

import (
	"time"

	"gorm.io/gorm"
)

// User is an admin-panel account. Only staff and admins can sign in to the panel.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string     `gorm:"not null" json:"-"`
	FullName       *string    `gorm:"size:255" json:"fullName,omitempty"`
	IsActive       bool       `gorm:"default:true" json:"isActive"`
	IsAdmin        bool       `gorm:"default:false" json:"isAdmin"`
	IsStaff        bool       `gorm:"default:false" json:"isStaff"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate hook
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// RevokedToken records the JWT ID of a logged-out session until the token expires.
type RevokedToken struct {
	JTI       string    `gorm:"primaryKey;size:64"`
	ExpiresAt time.Time `gorm:"index"`
}

// TableName specifies the table name for RevokedToken
func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
