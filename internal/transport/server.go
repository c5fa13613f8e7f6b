// Package transport exposes the services over HTTP using goa's muxer, codecs and
// request middleware.
package transport

import (
	"context"
	"log"
	"net/http"
	"net/netip"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"
	"goa.design/goa/v3/security"

	"seatrade/internal/config"
	"seatrade/internal/metrics"
	"seatrade/internal/services"
	"seatrade/internal/site"
	"seatrade/internal/util"
)

// Services bundles the business services served over HTTP.
type Services struct {
	Health       *services.HealthService
	Auth         *services.AuthService
	Inquiries    *services.InquiryService
	Testimonials *services.TestimonialService
	Products     *services.ProductService
	Blog         *services.BlogService
	Site         *site.Content
}

var (
	sessionScheme = &security.JWTScheme{Name: "jwt"}
	staffScheme   = &security.JWTScheme{Name: "jwt", RequiredScopes: []string{services.ScopeStaff}}
	adminScheme   = &security.JWTScheme{Name: "jwt", RequiredScopes: []string{services.ScopeAdmin}}
)

// endpoint handles a decoded request and returns the value to encode.
type endpoint func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error)

// Server routes HTTP requests to the services.
type Server struct {
	cfg     *config.Config
	svc     Services
	mux     goahttp.Muxer
	limiter *util.RateLimiter
	proxies []netip.Prefix
}

// New mounts every route. limiter throttles public submissions and may be nil.
func New(cfg *config.Config, svc Services, limiter *util.RateLimiter) *Server {
	if svc.Site == nil {
		svc.Site = site.DefaultContent()
	}
	proxies, err := cfg.Submission.TrustedProxyPrefixes()
	if err != nil {
		log.Printf("[API] Warning: %v", err)
	}
	s := &Server{
		cfg:     cfg,
		svc:     svc,
		mux:     goahttp.NewMuxer(),
		limiter: limiter,
		proxies: proxies,
	}
	s.mount()
	return s
}

// Handler returns the full middleware chain:
// security -> CORS -> request ID -> context -> logging -> Prometheus -> routes.
func (s *Server) Handler() http.Handler {
	metricsHandler := promhttp.Handler()
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			metricsHandler.ServeHTTP(w, r)
			return
		}
		s.mux.ServeHTTP(w, r)
	})

	var h http.Handler = metrics.PrometheusMiddleware(root)
	h = requestLogging(h)
	h = middleware.PopulateRequestContext()(h)
	h = middleware.RequestID(middleware.UseXRequestIDHeaderOption(true))(h)
	h = cors(h, s.cfg)
	return securityHeaders(h, s.cfg)
}

// handle registers e on the muxer. A non-nil scheme requires a bearer token.
func (s *Server) handle(method, pattern string, scheme *security.JWTScheme, status int, e endpoint) {
	s.mux.Handle(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if scheme != nil {
			authed, err := s.authenticate(ctx, r, scheme)
			if err != nil {
				writeError(ctx, w, err)
				return
			}
			ctx = authed
			r = r.WithContext(ctx)
		}

		res, err := e(ctx, w, r)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		if status == http.StatusNoContent {
			w.WriteHeader(status)
			return
		}
		encode(ctx, w, status, res)
	})
}

func (s *Server) authenticate(ctx context.Context, r *http.Request, scheme *security.JWTScheme) (context.Context, error) {
	header := r.Header.Get("Authorization")
	kind, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(kind, "bearer") || strings.TrimSpace(token) == "" {
		return nil, services.Unauthorized("missing bearer token")
	}
	return s.svc.Auth.JWTAuth(ctx, strings.TrimSpace(token), scheme)
}

// limited rejects a client that exceeds the submission rate for form.
func (s *Server) limited(form string, e endpoint) endpoint {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) (any, error) {
		if err := s.limiter.Allow(form + ":" + clientIP(r, s.proxies)); err != nil {
			metrics.RecordRateLimited(form)
			return nil, err
		}
		return e(ctx, w, r)
	}
}
