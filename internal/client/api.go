// Package client is a Go client for the Seatrade API. Besides the typed HTTP calls
// it carries the submission forms and the admin inquiry workflow used by the CLI.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goahttp "goa.design/goa/v3/http"

	"seatrade/internal/domain"
	"seatrade/internal/validation"
	apperrors "seatrade/pkg/errors"
)

const defaultTimeout = 15 * time.Second

// LoginResult carries an issued access token.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresAt   string `json:"expiresAt"`
}

type errorBody struct {
	Name    string                 `json:"name"`
	Message string                 `json:"message"`
	Fields  []apperrors.FieldError `json:"fields"`
}

// API calls the Seatrade HTTP API. Failures are returned as *apperrors.AppError.
type API struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures an API.
type Option func(*API)

// WithToken authenticates every request with a bearer token.
func WithToken(token string) Option {
	return func(a *API) { a.token = token }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(a *API) { a.http = c }
}

// NewAPI creates a client for the API rooted at baseURL.
func NewAPI(baseURL string, opts ...Option) *API {
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Login exchanges credentials for an access token.
func (a *API) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var res LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := a.do(ctx, http.MethodPost, "/api/auth/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListInquiries returns every inquiry, newest first.
func (a *API) ListInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	var res []domain.Inquiry
	if err := a.do(ctx, http.MethodGet, "/api/inquiries", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetInquiry returns one inquiry.
func (a *API) GetInquiry(ctx context.Context, id uint) (*domain.Inquiry, error) {
	var res domain.Inquiry
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/api/inquiries/%d", id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateInquiry submits a contact form.
func (a *API) CreateInquiry(ctx context.Context, in validation.InquiryInput) (*domain.Inquiry, error) {
	var res domain.Inquiry
	if err := a.do(ctx, http.MethodPost, "/api/inquiries", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateInquiryStatus sets the status of an inquiry. The returned record is nil when
// the server answers without a body.
func (a *API) UpdateInquiryStatus(ctx context.Context, id uint, status domain.Status) (*domain.Inquiry, error) {
	var res domain.Inquiry
	body := map[string]string{"status": string(status)}
	if err := a.do(ctx, http.MethodPut, fmt.Sprintf("/api/inquiries/%d", id), body, &res); err != nil {
		return nil, err
	}
	if res.ID == 0 {
		return nil, nil
	}
	return &res, nil
}

// DeleteInquiry removes an inquiry.
func (a *API) DeleteInquiry(ctx context.Context, id uint) error {
	return a.do(ctx, http.MethodDelete, fmt.Sprintf("/api/inquiries/%d", id), nil, nil)
}

// SubmitTestimonial sends a testimonial for moderation.
func (a *API) SubmitTestimonial(ctx context.Context, in validation.TestimonialInput) (*domain.Testimonial, error) {
	var res domain.Testimonial
	if err := a.do(ctx, http.MethodPost, "/api/testimonials/submit", in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListTestimonials returns approved testimonials.
func (a *API) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	var res []domain.Testimonial
	if err := a.do(ctx, http.MethodGet, "/api/testimonials", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListProducts returns the catalogue, optionally restricted to one category.
func (a *API) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	path := "/api/products"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var res []domain.Product
	if err := a.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetProduct returns one product.
func (a *API) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	var res domain.Product
	if err := a.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeBadRequest, "failed to build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		if err := goahttp.RequestEncoder(req).Encode(body); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeBadRequest, "failed to encode request", err)
		}
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeUnavailable, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		// Proxies may answer with non-JSON bodies; the status alone still classifies them.
		_ = goahttp.ResponseDecoder(resp).Decode(&eb)
		return apperrors.FromStatus(resp.StatusCode, eb.Message, eb.Fields)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	// An empty success body means the server applied the change without echoing it.
	if err := goahttp.ResponseDecoder(resp).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to decode response", err)
	}
	return nil
}
