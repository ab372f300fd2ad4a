package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	internal_errors "github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/middleware/ratelimiter"
	"github.com/shoply-dev/shoply/shared/utils"
)

func RateLimit(rl *ratelimiter.Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteError(w, err)
				return
			}
			if !rl.Allow(identity) {
				utils.WriteError(w, &internal_errors.ErrorWithStatusCode{
					Message:    "Rate limit exceeded, try again later",
					StatusCode: http.StatusTooManyRequests,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GlobalRateLimit(rl *ratelimiter.Limiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetIP extracts the real client IP from RemoteAddr
// Does NOT trust X-Real-IP or X-Forwarded-For headers (no reverse proxy)
func GetIP(r *http.Request) (string, error) {
	// Only trust RemoteAddr - can't be spoofed (comes from TCP connection)
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// Fallback: if RemoteAddr doesn't have port, use it directly
		ip = r.RemoteAddr
	}

	if net.ParseIP(ip) == nil {
		return "", internal_errors.NewBadRequest("invalid IP address")
	}

	return ip, nil
}

// GetEmailFromBody extracts email from JSON request body for rate limiting purposes
// It reads the body and restores it so the handler can read it again
func GetEmailFromBody(r *http.Request) (string, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", errors.New("failed to read request body")
	}
	// Restore the body so the handler can read it
	r.Body = io.NopCloser(bytes.NewBuffer(body))

	var data struct {
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return "", internal_errors.NewBadRequest("invalid request body")
	}

	if data.Email != "" {
		return data.Email, nil
	}
	if data.Username != "" {
		return data.Username, nil
	}
	return "", internal_errors.NewBadRequest("email field is required")
}

// GetFieldFromForm extracts a field from form data for rate limiting purposes
// Used by frontend HTML form submissions
func GetFieldFromForm(field string) func(r *http.Request) (string, error) {
	return func(r *http.Request) (string, error) {
		if err := r.ParseForm(); err != nil {
			return "", errors.New("failed to parse form")
		}

		value := r.FormValue(field)
		if value == "" {
			return "", internal_errors.NewBadRequest(field + " field is required")
		}

		return value, nil
	}
}
