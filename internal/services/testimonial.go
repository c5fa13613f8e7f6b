package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"seatrade/internal/domain"
	"seatrade/internal/metrics"
	"seatrade/internal/validation"
)

// UpdateTestimonialPayload is the body of an admin testimonial update. Nil fields are
// left unchanged.
type UpdateTestimonialPayload struct {
	Name     *string `json:"name,omitempty"`
	Company  *string `json:"company,omitempty"`
	Content  *string `json:"content,omitempty"`
	Rating   *int    `json:"rating,omitempty"`
	Approved *bool   `json:"approved,omitempty"`
}

// TestimonialService implements testimonial submission and moderation
type TestimonialService struct {
	db *gorm.DB
}

// NewTestimonialService creates a new testimonial service
func NewTestimonialService(db *gorm.DB) *TestimonialService {
	return &TestimonialService{db: db}
}

// Submit stores a visitor testimonial awaiting approval.
func (s *TestimonialService) Submit(ctx context.Context, p *validation.TestimonialInput) (*domain.Testimonial, error) {
	if err := invalid(validation.Testimonial(*p)); err != nil {
		log.Printf("[TESTIMONIAL] Submit failed: %v", err)
		return nil, err
	}

	t := &domain.Testimonial{
		Name:    strings.TrimSpace(p.Name),
		Company: trimmedOrNil(p.Company),
		Content: strings.TrimSpace(p.Content),
		Rating:  p.Rating,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		log.Printf("[TESTIMONIAL] Submit failed: database error: %v", err)
		return nil, fmt.Errorf("failed to save testimonial: %w", err)
	}

	log.Printf("[TESTIMONIAL] Submit successful: id=%d, rating=%d", t.ID, t.Rating)
	metrics.RecordTestimonialSubmission()
	return t, nil
}

// ListApproved returns testimonials cleared for the marketing pages, newest first.
func (s *TestimonialService) ListApproved(ctx context.Context) ([]domain.Testimonial, error) {
	out := []domain.Testimonial{}
	if err := s.db.WithContext(ctx).Where("approved = ?", true).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}
	return out, nil
}

// ListAll returns every testimonial for moderation, newest first.
func (s *TestimonialService) ListAll(ctx context.Context) ([]domain.Testimonial, error) {
	out := []domain.Testimonial{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch testimonials: %w", err)
	}
	return out, nil
}

// Update edits or approves a testimonial.
func (s *TestimonialService) Update(ctx context.Context, id uint, p *UpdateTestimonialPayload) (*domain.Testimonial, error) {
	var t domain.Testimonial
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("testimonial %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch testimonial: %w", err)
	}

	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Company != nil {
		t.Company = trimmedOrNil(p.Company)
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Rating != nil {
		t.Rating = *p.Rating
	}
	if p.Approved != nil {
		t.Approved = *p.Approved
	}

	if err := invalid(validation.Testimonial(validation.TestimonialInput{
		Name: t.Name, Company: t.Company, Content: t.Content, Rating: t.Rating,
	})); err != nil {
		return nil, err
	}
	t.Name = strings.TrimSpace(t.Name)
	t.Content = strings.TrimSpace(t.Content)

	if err := s.db.WithContext(ctx).Save(&t).Error; err != nil {
		return nil, fmt.Errorf("failed to update testimonial: %w", err)
	}
	log.Printf("[TESTIMONIAL] Update successful: id=%d, approved=%v", t.ID, t.Approved)
	return &t, nil
}

// Delete removes a testimonial.
func (s *TestimonialService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&domain.Testimonial{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete testimonial: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFound("testimonial %d not found", id)
	}
	log.Printf("[TESTIMONIAL] Delete successful: id=%d", id)
	return nil
}
