package client

import (
	"context"
	"errors"
	"fmt"
	"log"

	"seatrade/internal/domain"
	"seatrade/internal/validation"
	apperrors "seatrade/pkg/errors"
)

// Messages shown after a form submission.
const (
	MsgInquirySent        = "Thank you! We will get back to you shortly."
	MsgInquiryFailed      = "Failed to send your inquiry. Please try again."
	MsgTestimonialFailed  = "Something went wrong. Please try again."
	productInquiryMessage = "I'm interested in %s. Please send me pricing and availability details."
)

// InquiryForm is the contact form. Values survive a failed submit so the visitor can
// retry; a successful submit clears them.
type InquiryForm struct {
	api      *API
	notifier Notifier

	Values validation.InquiryInput
	Errors validation.Errors
}

// NewInquiryForm returns an empty contact form.
func NewInquiryForm(api *API, notifier Notifier) *InquiryForm {
	return &InquiryForm{api: api, notifier: notifier}
}

// NewProductInquiryForm returns a contact form pre-filled for asking about product.
func NewProductInquiryForm(api *API, notifier Notifier, product string) *InquiryForm {
	f := NewInquiryForm(api, notifier)
	topic := string(domain.TopicProduct)
	f.Values.Topic = &topic
	f.Values.Message = fmt.Sprintf(productInquiryMessage, product)
	return f
}

// Submit validates the values and, when they are valid, sends exactly one create
// request. Invalid values are reported in Errors and returned without a request.
func (f *InquiryForm) Submit(ctx context.Context) (*domain.Inquiry, error) {
	f.Errors = validation.Inquiry(f.Values)
	if !f.Errors.Valid() {
		return nil, f.Errors
	}

	created, err := f.api.CreateInquiry(ctx, f.Values)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			f.Errors = fieldErrors(appErr.Fields)
		}
		log.Printf("[CLIENT] Inquiry submit failed: %v", err)
		f.notifier.Error(MsgInquiryFailed)
		return nil, err
	}

	f.notifier.Success(MsgInquirySent)
	f.Values = validation.InquiryInput{}
	f.Errors = nil
	return created, nil
}

// TestimonialForm is the testimonial submission form.
type TestimonialForm struct {
	api   *API
	cache *Cache

	Values validation.TestimonialInput
	Errors validation.Errors

	// Done is set once the testimonial has been accepted.
	Done bool

	// ErrorMessage is the inline error shown after a failed request.
	ErrorMessage string
}

// NewTestimonialForm returns an empty testimonial form. A successful submit
// invalidates the testimonials entry of cache.
func NewTestimonialForm(api *API, cache *Cache) *TestimonialForm {
	return &TestimonialForm{api: api, cache: cache}
}

// Submit validates and sends the testimonial.
func (f *TestimonialForm) Submit(ctx context.Context) error {
	f.ErrorMessage = ""
	f.Errors = validation.Testimonial(f.Values)
	if !f.Errors.Valid() {
		return f.Errors
	}

	if _, err := f.api.SubmitTestimonial(ctx, f.Values); err != nil {
		f.ErrorMessage = MsgTestimonialFailed
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			f.Errors = fieldErrors(appErr.Fields)
			if appErr.Status != 0 && appErr.Message != "" {
				f.ErrorMessage = appErr.Message
			}
		}
		return err
	}

	f.Done = true
	if f.cache != nil {
		f.cache.Invalidate(KeyTestimonials)
	}
	return nil
}

func fieldErrors(fields []apperrors.FieldError) validation.Errors {
	if len(fields) == 0 {
		return nil
	}
	out := make(validation.Errors, len(fields))
	for i, fe := range fields {
		out[i] = validation.FieldError{Field: fe.Field, Message: fe.Message}
	}
	return out
}
