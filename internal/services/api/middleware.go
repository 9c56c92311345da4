package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golden-fork/internal/logger"
	"golden-fork/internal/models"
	"golden-fork/internal/services/coupon"
	"golden-fork/internal/validation"
)

type ctxKey struct{}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// withLogging adds request logging middleware
func (h *Handler) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, requestID))

		h.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"session":     r.Header.Get(SessionHeader),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		h.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// writeServiceError maps a service error to a status code and a user-facing
// message. Remote failures are retryable and answer 503.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, action string, err error) {
	requestID := requestIDFrom(r.Context())

	var ve validation.ValidationError
	switch {
	case errors.As(err, &ve):
		h.logger.Warn(action, "Request validation failed", requestID, map[string]interface{}{
			"field": ve.Field,
			"error": ve.Message,
		})
		h.writeErrorResponse(w, http.StatusBadRequest, ve.Message, requestID)
	case errors.Is(err, coupon.ErrInvalidCoupon):
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid coupon", requestID)
	case errors.Is(err, coupon.ErrExpired):
		h.writeErrorResponse(w, http.StatusBadRequest, "Coupon expired", requestID)
	case errors.Is(err, models.ErrNotLoggedIn):
		h.writeErrorResponse(w, http.StatusUnauthorized, "Please login to continue", requestID)
	case errors.Is(err, models.ErrNotFound):
		h.writeErrorResponse(w, http.StatusNotFound, "User not found, please login again", requestID)
	case models.IsRemote(err), errors.Is(err, context.DeadlineExceeded):
		h.logger.Error(action, "Backend unavailable", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry", requestID)
	default:
		h.logger.Error(action, "Request failed", requestID, err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode error response", requestID, err, nil)
	}
}
