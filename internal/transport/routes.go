package transport

import (
	"context"
	"net/http"

	"seatrade/internal/services"
	"seatrade/internal/validation"
)

func (s *Server) mount() {
	s.handle(http.MethodGet, "/health", nil, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, _ *http.Request) (any, error) {
		return s.svc.Health.Check(ctx)
	})

	s.mountAuth()
	s.mountInquiries()
	s.mountTestimonials()
	s.mountProducts()
	s.mountBlog()

	s.handle(http.MethodGet, "/api/site/companies", nil, http.StatusOK, func(context.Context, http.ResponseWriter, *http.Request) (any, error) {
		return s.svc.Site.Companies, nil
	})
}

func (s *Server) mountAuth() {
	s.handle(http.MethodPost, "/api/auth/login", nil, http.StatusOK, func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		var p services.LoginPayload
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return s.svc.Auth.Login(ctx, &p)
	})
	s.handle(http.MethodPost, "/api/auth/logout", sessionScheme, http.StatusNoContent, func(ctx context.Context, _ http.ResponseWriter, _ *http.Request) (any, error) {
		return nil, s.svc.Auth.Logout(ctx)
	})
	s.handle(http.MethodGet, "/api/auth/me", sessionScheme, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, _ *http.Request) (any, error) {
		return s.svc.Auth.Me(ctx)
	})
}

func (s *Server) mountInquiries() {
	svc := s.svc.Inquiries

	s.handle(http.MethodGet, "/api/inquiries", staffScheme, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, _ *http.Request) (any, error) {
		return svc.List(ctx)
	})
	s.handle(http.MethodPost, "/api/inquiries", nil, http.StatusCreated, s.limited("inquiry", func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		var p validation.InquiryInput
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return svc.Create(ctx, &p)
	}))
	s.handle(http.MethodGet, "/api/inquiries/{id}", staffScheme, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		return svc.Get(ctx, id)
	})
	s.handle(http.MethodPut, "/api/inquiries/{id}", staffScheme, http.StatusOK, func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		var p services.UpdateInquiryPayload
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return svc.UpdateStatus(ctx, id, &p)
	})
	s.handle(http.MethodDelete, "/api/inquiries/{id}", staffScheme, http.StatusNoContent, func(ctx context.Context, _ http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		return nil, svc.Delete(ctx, id)
	})
}

func (s *Server) mountTestimonials() {
	svc := s.svc.Testimonials

	s.handle(http.MethodPost, "/api/testimonials/submit", nil, http.StatusCreated, s.limited("testimonial", func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		var p validation.TestimonialInput
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return svc.Submit(ctx, &p)
	}))
	s.handle(http.MethodGet, "/api/testimonials", nil, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, _ *http.Request) (any, error) {
		return svc.ListApproved(ctx)
	})
	s.handle(http.MethodGet, "/api/admin/testimonials", staffScheme, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, _ *http.Request) (any, error) {
		return svc.ListAll(ctx)
	})
	s.handle(http.MethodPut, "/api/admin/testimonials/{id}", staffScheme, http.StatusOK, func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		var p services.UpdateTestimonialPayload
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return svc.Update(ctx, id, &p)
	})
	s.handle(http.MethodDelete, "/api/admin/testimonials/{id}", staffScheme, http.StatusNoContent, func(ctx context.Context, _ http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		return nil, svc.Delete(ctx, id)
	})
}

func (s *Server) mountProducts() {
	svc := s.svc.Products

	s.handle(http.MethodGet, "/api/products", nil, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, r *http.Request) (any, error) {
		return svc.List(ctx, r.URL.Query().Get("category"))
	})
	s.handle(http.MethodGet, "/api/products/{id}", nil, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		return svc.Get(ctx, id)
	})
	s.handle(http.MethodPost, "/api/products", adminScheme, http.StatusCreated, func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		var p validation.ProductInput
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return svc.Create(ctx, &p)
	})
	s.handle(http.MethodPut, "/api/products/{id}", adminScheme, http.StatusOK, func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		var p validation.ProductInput
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return svc.Update(ctx, id, &p)
	})
	s.handle(http.MethodDelete, "/api/products/{id}", adminScheme, http.StatusNoContent, func(ctx context.Context, _ http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		return nil, svc.Delete(ctx, id)
	})
}

func (s *Server) mountBlog() {
	svc := s.svc.Blog

	s.handle(http.MethodGet, "/api/blog", nil, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, _ *http.Request) (any, error) {
		return svc.ListPublished(ctx)
	})
	s.handle(http.MethodGet, "/api/blog/{slug}", nil, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, r *http.Request) (any, error) {
		return svc.GetPublished(ctx, s.mux.Vars(r)["slug"])
	})
	s.handle(http.MethodGet, "/api/admin/blog", adminScheme, http.StatusOK, func(ctx context.Context, _ http.ResponseWriter, _ *http.Request) (any, error) {
		return svc.ListAll(ctx)
	})
	s.handle(http.MethodPost, "/api/admin/blog", adminScheme, http.StatusCreated, func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		var p validation.BlogPostInput
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return svc.Create(ctx, &p)
	})
	s.handle(http.MethodPut, "/api/admin/blog/{id}", adminScheme, http.StatusOK, func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		var p validation.BlogPostInput
		if err := decodeBody(w, r, &p); err != nil {
			return nil, err
		}
		return svc.Update(ctx, id, &p)
	})
	s.handle(http.MethodDelete, "/api/admin/blog/{id}", adminScheme, http.StatusNoContent, func(ctx context.Context, _ http.ResponseWriter, r *http.Request) (any, error) {
		id, err := s.pathID(r)
		if err != nil {
			return nil, err
		}
		return nil, svc.Delete(ctx, id)
	})
}
