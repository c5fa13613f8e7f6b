package client

import (
	"context"
	"fmt"
	"log"
	"sync"

	"seatrade/internal/domain"
	"seatrade/internal/validation"
)

// Messages shown by the inquiry manager.
const (
	MsgStatusUpdated   = "Inquiry status updated."
	MsgStatusFailed    = "Failed to update inquiry status."
	MsgInquiryDeleted  = "Inquiry deleted."
	MsgDeleteFailed    = "Failed to delete inquiry."
	deleteConfirmation = "Delete inquiry #%d? This cannot be undone."
)

// InquiryManager drives the admin inquiry screen. Mutations never touch the local
// list; on success the cached collection is invalidated and refetched.
type InquiryManager struct {
	api       *API
	cache     *Cache
	notifier  Notifier
	confirmer Confirmer

	mu        sync.Mutex
	inquiries []domain.Inquiry
	detail    *domain.Inquiry
}

// NewInquiryManager wires the manager to its collaborators.
func NewInquiryManager(api *API, cache *Cache, notifier Notifier, confirmer Confirmer) *InquiryManager {
	return &InquiryManager{api: api, cache: cache, notifier: notifier, confirmer: confirmer}
}

// Load returns the inquiry collection, from the cache when present.
func (m *InquiryManager) Load(ctx context.Context) ([]domain.Inquiry, error) {
	list, err := Query(ctx, m.cache, KeyInquiries, m.api.ListInquiries)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.inquiries = list
	if m.detail != nil {
		m.detail = find(list, m.detail.ID)
	}
	m.mu.Unlock()
	return list, nil
}

// Visible returns the loaded inquiries after filtering and sorting.
func (m *InquiryManager) Visible(f Filter, order SortOrder) []domain.Inquiry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SortInquiries(FilterInquiries(m.inquiries, f), order)
}

// SetStatus changes the status of inquiry id. Unknown statuses are rejected without
// a request.
func (m *InquiryManager) SetStatus(ctx context.Context, id uint, status string) error {
	if msg := validation.StatusProblem(status); msg != "" {
		return validation.Errors{{Field: "status", Message: msg}}
	}

	if _, err := m.api.UpdateInquiryStatus(ctx, id, domain.Status(status)); err != nil {
		log.Printf("[CLIENT] Status update for inquiry %d failed: %v", id, err)
		m.notifier.Error(MsgStatusFailed)
		return err
	}

	m.notifier.Success(MsgStatusUpdated)
	return m.refresh(ctx)
}

// Delete removes inquiry id after confirmation. deleted is false when the user
// declined or no confirmer is set, in which case no request is sent.
func (m *InquiryManager) Delete(ctx context.Context, id uint) (deleted bool, err error) {
	if m.confirmer == nil || !m.confirmer.Confirm(fmt.Sprintf(deleteConfirmation, id)) {
		return false, nil
	}

	if err := m.api.DeleteInquiry(ctx, id); err != nil {
		log.Printf("[CLIENT] Delete of inquiry %d failed: %v", id, err)
		m.notifier.Error(MsgDeleteFailed)
		return false, err
	}

	m.mu.Lock()
	if m.detail != nil && m.detail.ID == id {
		m.detail = nil
	}
	m.mu.Unlock()

	m.notifier.Success(MsgInquiryDeleted)
	return true, m.refresh(ctx)
}

// Open shows the detail view for a loaded inquiry.
func (m *InquiryManager) Open(id uint) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detail = find(m.inquiries, id)
	return m.detail != nil
}

// Close hides the detail view.
func (m *InquiryManager) Close() {
	m.mu.Lock()
	m.detail = nil
	m.mu.Unlock()
}

// Detail returns the inquiry shown in the detail view.
func (m *InquiryManager) Detail() (domain.Inquiry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detail == nil {
		return domain.Inquiry{}, false
	}
	return *m.detail, true
}

func (m *InquiryManager) refresh(ctx context.Context) error {
	m.cache.Invalidate(KeyInquiries)
	_, err := m.Load(ctx)
	return err
}

func find(list []domain.Inquiry, id uint) *domain.Inquiry {
	for i := range list {
		if list[i].ID == id {
			inq := list[i]
			return &inq
		}
	}
	return nil
}
