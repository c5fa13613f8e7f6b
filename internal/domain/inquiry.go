package domain

import (
	"time"

	"gorm.io/gorm"
)

// Status is the workflow state of an inquiry.
type Status string

const (
	StatusNew      Status = "new"
	StatusReplied  Status = "replied"
	StatusResolved Status = "resolved"
)

// Statuses lists every valid inquiry status in display order.
var Statuses = []Status{StatusNew, StatusReplied, StatusResolved}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Topic classifies an inquiry.
type Topic string

const (
	TopicGeneral       Topic = "general"
	TopicProduct       Topic = "product"
	TopicExport        Topic = "export"
	TopicLogistics     Topic = "logistics"
	TopicPartnership   Topic = "partnership"
	TopicSupport       Topic = "support"
	TopicDocumentation Topic = "documentation"
	TopicOther         Topic = "other"
)

// Topics lists every valid topic.
var Topics = []Topic{
	TopicGeneral, TopicProduct, TopicExport, TopicLogistics,
	TopicPartnership, TopicSupport, TopicDocumentation, TopicOther,
}

// Valid reports whether t is one of the known topics.
func (t Topic) Valid() bool {
	for _, v := range Topics {
		if t == v {
			return true
		}
	}
	return false
}

// Inquiry represents a contact form submission
type Inquiry struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FirstName string     `gorm:"size:255;not null" json:"firstName"`
	LastName  string     `gorm:"size:255;not null" json:"lastName"`
	Email     string     `gorm:"size:255;not null;index" json:"email"`
	Phone     *string    `gorm:"size:50" json:"phone,omitempty"`
	Company   *string    `gorm:"size:255" json:"company,omitempty"`
	Topic     *Topic     `gorm:"size:50" json:"topic,omitempty"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	Status    Status     `gorm:"size:100;not null;default:'new';index" json:"status"`
	CreatedAt time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
}

// TableName specifies the table name for Inquiry
func (Inquiry) TableName() string {
	return "inquiries"
}

// FullName is the "firstName lastName" form used for display and sorting.
func (i *Inquiry) FullName() string {
	return i.FirstName + " " + i.LastName
}

// BeforeCreate hook
func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now().UTC()
	i.UpdatedAt = nil
	i.Status = StatusNew
	return nil
}

// BeforeUpdate hook
func (i *Inquiry) BeforeUpdate(tx *gorm.DB) error {
	now := time.Now().UTC()
	i.UpdatedAt = &now
	return nil
}
