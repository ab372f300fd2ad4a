package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/shoply-dev/shoply/shared/errors"
	"github.com/shoply-dev/shoply/shared/utils"
)

const APIKeyHeader = "X-Api-Key"

// RequireAPIKey guards service-to-service endpoints with a shared key.
// Comparison is constant-time.
func RequireAPIKey(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(APIKeyHeader)
			if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(apiKey)) != 1 {
				utils.WriteError(w, errors.NewUnauthorized("Invalid API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
