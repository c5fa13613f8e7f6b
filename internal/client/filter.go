package client

import (
	"fmt"
	"sort"
	"strings"

	"seatrade/internal/domain"
)

// StatusAll matches every status in a Filter.
const StatusAll = "all"

// Filter selects inquiries by status and free-text search. Both must match.
type Filter struct {
	// Status is an inquiry status, or "" / "all" for every status.
	Status string
	// Search is matched case-insensitively against name, email, company and message.
	Search string
}

// SortOrder orders the admin inquiry list.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
)

// ParseSortOrder accepts newest, oldest or name. An empty string means newest.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortName:
		return o, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want newest, oldest or name)", s)
	}
}

// Matches reports whether inq passes the filter.
func (f Filter) Matches(inq domain.Inquiry) bool {
	if f.Status != "" && f.Status != StatusAll && string(inq.Status) != f.Status {
		return false
	}
	q := strings.ToLower(f.Search)
	if q == "" {
		return true
	}
	fields := []string{inq.FirstName, inq.LastName, inq.Email, inq.Message}
	if inq.Company != nil {
		fields = append(fields, *inq.Company)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FilterInquiries returns the inquiries matching f in their original order.
func FilterInquiries(list []domain.Inquiry, f Filter) []domain.Inquiry {
	out := make([]domain.Inquiry, 0, len(list))
	for _, inq := range list {
		if f.Matches(inq) {
			out = append(out, inq)
		}
	}
	return out
}

// SortInquiries returns a sorted copy of list. The sort is stable, so ties keep
// their incoming order.
func SortInquiries(list []domain.Inquiry, order SortOrder) []domain.Inquiry {
	out := make([]domain.Inquiry, len(list))
	copy(out, list)

	var less func(a, b domain.Inquiry) bool
	switch order {
	case SortOldest:
		less = func(a, b domain.Inquiry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case SortName:
		less = func(a, b domain.Inquiry) bool { return a.FullName() < b.FullName() }
	default:
		less = func(a, b domain.Inquiry) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
