package transport

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	goahttp "goa.design/goa/v3/http"
	goamiddleware "goa.design/goa/v3/middleware"
	goa "goa.design/goa/v3/pkg"

	"seatrade/internal/services"
	"seatrade/internal/util"
	"seatrade/internal/validation"
)

const maxBodyBytes = 1 << 20

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Name    string                  `json:"name"`
	Message string                  `json:"message"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
}

// decodeBody reads a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := goahttp.RequestDecoder(r).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return services.BadRequest("missing request body")
		}
		return services.BadRequest("invalid request body: %s", err.Error())
	}
	return nil
}

// encode writes v with the given status.
func encode(ctx context.Context, w http.ResponseWriter, status int, v any) {
	enc := goahttp.ResponseEncoder(ctx, w)
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := enc.Encode(v); err != nil {
		log.Printf("[ERROR] failed to encode response: %v", err)
	}
}

// writeError maps a service error to its HTTP status and error body. Unknown errors
// are logged and reported as a generic 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status, body := errorResponse(err)
	if status == http.StatusInternalServerError {
		log.Printf("[ERROR] request %s: %v", requestID(ctx), err)
	}
	var rl *util.RateLimitError
	if errors.As(err, &rl) {
		w.Header().Set("Retry-After", strconv.Itoa(int(rl.RetryAfter.Round(time.Second)/time.Second)))
	}
	encode(ctx, w, status, body)
}

func errorResponse(err error) (int, *ErrorBody) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, &ErrorBody{
			Name:    "validation_error",
			Message: "validation failed",
			Fields:  verr.Fields,
		}
	}

	var rl *util.RateLimitError
	if errors.As(err, &rl) {
		return http.StatusTooManyRequests, &ErrorBody{Name: services.ErrNameRateLimited, Message: rl.Error()}
	}

	var se *goa.ServiceError
	if errors.As(err, &se) {
		return statusForName(se.Name), &ErrorBody{Name: se.Name, Message: se.Message}
	}

	return http.StatusInternalServerError, &ErrorBody{Name: "internal_error", Message: "internal server error"}
}

func statusForName(name string) int {
	switch name {
	case services.ErrNameBadRequest:
		return http.StatusBadRequest
	case services.ErrNameUnauthorized:
		return http.StatusUnauthorized
	case services.ErrNameForbidden:
		return http.StatusForbidden
	case services.ErrNameNotFound:
		return http.StatusNotFound
	case services.ErrNameRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the {id} segment of the matched route.
func (s *Server) pathID(r *http.Request) (uint, error) {
	raw := s.mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, services.BadRequest("invalid id %q", raw)
	}
	return uint(id), nil
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(goamiddleware.RequestIDKey).(string); ok {
		return id
	}
	return "-"
}
