// Package validation holds the submission schemas shared by the API server and the
// Go client. Every validator is a pure function from input to a list of field errors.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	goa "goa.design/goa/v3/pkg"

	"seatrade/internal/domain"
)

// Column caps mirrored from the persisted schema.
const (
	MaxNameLength     = 255
	MaxPhoneLength    = 50
	MaxTopicLength    = 50
	MaxStatusLength   = 100
	MaxCategoryLength = 100
	MaxURLLength      = 500

	MinTestimonialName    = 2
	MinTestimonialContent = 10
	MinRating             = 1
	MaxRating             = 5
)

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the result of a validation run. An empty list means the input is valid.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

// Valid reports whether no field failed.
func (e Errors) Valid() bool { return len(e) == 0 }

// Field returns the first message recorded for field, or "".
func (e Errors) Field(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

func (e *Errors) add(field, format string, args ...any) {
	*e = append(*e, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// InquiryInput is the body of a create-inquiry request.
type InquiryInput struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Company   *string `json:"company,omitempty"`
	Topic     *string `json:"topic,omitempty"`
	Message   string  `json:"message"`
}

// Inquiry validates a contact form submission.
func Inquiry(in InquiryInput) Errors {
	var errs Errors
	required(&errs, "firstName", in.FirstName, MaxNameLength)
	required(&errs, "lastName", in.LastName, MaxNameLength)
	if required(&errs, "email", in.Email, MaxNameLength) {
		if msg := emailProblem(in.Email); msg != "" {
			errs.add("email", "%s", msg)
		}
	}
	optional(&errs, "phone", in.Phone, MaxPhoneLength)
	optional(&errs, "company", in.Company, MaxNameLength)
	if in.Topic != nil && strings.TrimSpace(*in.Topic) != "" {
		if msg := TopicProblem(strings.TrimSpace(*in.Topic)); msg != "" {
			errs.add("topic", "%s", msg)
		}
	}
	if strings.TrimSpace(in.Message) == "" {
		errs.add("message", "is required")
	}
	return errs
}

// TestimonialInput is the body of a testimonial submission.
type TestimonialInput struct {
	Name    string  `json:"name"`
	Company *string `json:"company,omitempty"`
	Content string  `json:"content"`
	Rating  int     `json:"rating"`
}

// Testimonial validates a testimonial submission.
func Testimonial(in TestimonialInput) Errors {
	var errs Errors
	name := strings.TrimSpace(in.Name)
	switch n := utf8.RuneCountInString(name); {
	case n < MinTestimonialName:
		errs.add("name", "must be at least %d characters", MinTestimonialName)
	case n > MaxNameLength:
		errs.add("name", "must be at most %d characters", MaxNameLength)
	}
	optional(&errs, "company", in.Company, MaxNameLength)
	if utf8.RuneCountInString(strings.TrimSpace(in.Content)) < MinTestimonialContent {
		errs.add("content", "must be at least %d characters", MinTestimonialContent)
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		errs.add("rating", "must be between %d and %d", MinRating, MaxRating)
	}
	return errs
}

// StatusProblem explains why s is not an inquiry status, or returns "".
func StatusProblem(s string) string {
	if utf8.RuneCountInString(s) > MaxStatusLength {
		return fmt.Sprintf("must be at most %d characters", MaxStatusLength)
	}
	if !domain.Status(s).Valid() {
		return fmt.Sprintf("must be one of %s", joinStatuses())
	}
	return ""
}

// TopicProblem explains why t is not a topic, or returns "".
func TopicProblem(t string) string {
	if utf8.RuneCountInString(t) > MaxTopicLength {
		return fmt.Sprintf("must be at most %d characters", MaxTopicLength)
	}
	if !domain.Topic(t).Valid() {
		return fmt.Sprintf("must be one of %s", joinTopics())
	}
	return ""
}

// ProductInput is the body of product create and update requests.
type ProductInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Origin      string `json:"origin"`
	ImageURL    string `json:"imageUrl"`
	Featured    bool   `json:"featured"`
}

// Product validates a catalogue entry.
func Product(in ProductInput) Errors {
	var errs Errors
	required(&errs, "name", in.Name, MaxNameLength)
	maxLen(&errs, "category", in.Category, MaxCategoryLength)
	maxLen(&errs, "origin", in.Origin, MaxNameLength)
	maxLen(&errs, "imageUrl", in.ImageURL, MaxURLLength)
	return errs
}

// BlogPostInput is the body of blog post create and update requests.
type BlogPostInput struct {
	Title     string `json:"title"`
	Slug      string `json:"slug,omitempty"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Published bool   `json:"published"`
}

// BlogPost validates a blog post.
func BlogPost(in BlogPostInput) Errors {
	var errs Errors
	required(&errs, "title", in.Title, MaxNameLength)
	maxLen(&errs, "slug", in.Slug, MaxNameLength)
	maxLen(&errs, "author", in.Author, MaxNameLength)
	if strings.TrimSpace(in.Content) == "" {
		errs.add("content", "is required")
	}
	return errs
}

func required(errs *Errors, field, value string, max int) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.add(field, "is required")
		return false
	}
	return maxLen(errs, field, value, max)
}

func optional(errs *Errors, field string, value *string, max int) {
	if value == nil {
		return
	}
	maxLen(errs, field, strings.TrimSpace(*value), max)
}

func maxLen(errs *Errors, field, value string, max int) bool {
	if utf8.RuneCountInString(value) > max {
		errs.add(field, "must be at most %d characters", max)
		return false
	}
	return true
}

func emailProblem(email string) string {
	email = strings.TrimSpace(email)
	if strings.ContainsAny(email, " <>") {
		return "must be a valid email address"
	}
	if err := goa.ValidateFormat("email", email, goa.FormatEmail); err != nil {
		return "must be a valid email address"
	}
	return ""
}

func joinStatuses() string {
	parts := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinTopics() string {
	parts := make([]string, len(domain.Topics))
	for i, t := range domain.Topics {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
