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

// Notifier is told about every newly created inquiry.
type Notifier interface {
	NotifyNewInquiry(inquiry *domain.Inquiry) error
}

// UpdateInquiryPayload is the body of an inquiry update.
type UpdateInquiryPayload struct {
	Status string `json:"status"`
}

// InquiryService implements the inquiry lifecycle
type InquiryService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewInquiryService creates a new inquiry service. notifier may be nil.
func NewInquiryService(db *gorm.DB, notifier Notifier) *InquiryService {
	return &InquiryService{db: db, notifier: notifier}
}

// Create stores a visitor's inquiry with status "new".
func (s *InquiryService) Create(ctx context.Context, p *validation.InquiryInput) (*domain.Inquiry, error) {
	log.Printf("[INQUIRY] Create request: email=%s", strings.TrimSpace(p.Email))

	if err := invalid(validation.Inquiry(*p)); err != nil {
		log.Printf("[INQUIRY] Create failed: %v", err)
		return nil, err
	}

	inquiry := &domain.Inquiry{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.ToLower(strings.TrimSpace(p.Email)),
		Phone:     trimmedOrNil(p.Phone),
		Company:   trimmedOrNil(p.Company),
		Message:   strings.TrimSpace(p.Message),
	}
	if topic := trimmedOrNil(p.Topic); topic != nil {
		t := domain.Topic(*topic)
		inquiry.Topic = &t
	}

	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		log.Printf("[INQUIRY] Create failed: database error: %v", err)
		return nil, fmt.Errorf("failed to save inquiry: %w", err)
	}

	log.Printf("[INQUIRY] Create successful: id=%d, email=%s", inquiry.ID, inquiry.Email)
	metrics.RecordInquirySubmission()

	if s.notifier != nil {
		notified := *inquiry
		go func() {
			if err := s.notifier.NotifyNewInquiry(&notified); err != nil {
				log.Printf("[INQUIRY] Warning: failed to send notification for id=%d: %v", notified.ID, err)
			}
		}()
	}

	return inquiry, nil
}

// List returns every inquiry, newest first. The admin panel filters and sorts the
// full collection itself.
func (s *InquiryService) List(ctx context.Context) ([]domain.Inquiry, error) {
	inquiries := []domain.Inquiry{}
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&inquiries).Error; err != nil {
		log.Printf("[INQUIRY] List failed: database error: %v", err)
		return nil, fmt.Errorf("failed to fetch inquiries: %w", err)
	}
	log.Printf("[INQUIRY] List successful: returned %d inquiries", len(inquiries))
	return inquiries, nil
}

// Get returns one inquiry.
func (s *InquiryService) Get(ctx context.Context, id uint) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	if err := s.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("inquiry %d not found", id)
		}
		return nil, fmt.Errorf("failed to fetch inquiry: %w", err)
	}
	return &inquiry, nil
}

// UpdateStatus moves an inquiry to any of the known statuses. Transitions are not
// restricted; the last write wins.
func (s *InquiryService) UpdateStatus(ctx context.Context, id uint, p *UpdateInquiryPayload) (*domain.Inquiry, error) {
	status := strings.TrimSpace(p.Status)
	if msg := validation.StatusProblem(status); msg != "" {
		return nil, invalid(validation.Errors{{Field: "status", Message: msg}})
	}

	inquiry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := inquiry.Status
	inquiry.Status = domain.Status(status)
	if err := s.db.WithContext(ctx).Save(inquiry).Error; err != nil {
		log.Printf("[INQUIRY] UpdateStatus failed: id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}

	log.Printf("[INQUIRY] UpdateStatus successful: id=%d, %s -> %s", id, previous, inquiry.Status)
	metrics.RecordInquiryStatusChange(status)
	return inquiry, nil
}

// Delete removes an inquiry permanently.
func (s *InquiryService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&domain.Inquiry{}, id)
	if result.Error != nil {
		log.Printf("[INQUIRY] Delete failed: id=%d: %v", id, result.Error)
		return fmt.Errorf("failed to delete inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFound("inquiry %d not found", id)
	}

	log.Printf("[INQUIRY] Delete successful: id=%d", id)
	metrics.RecordInquiryDeletion()
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
