package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shoply-dev/shoply/shared/errors"
	jwt_internal "github.com/shoply-dev/shoply/shared/jwt"
	"github.com/shoply-dev/shoply/shared/utils"
)

// Key to store the token claims in the request context
type key int

const ClaimsKey key = 0

// Auth holds dependencies for bearer-token authentication middleware.
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that requires a valid bearer token.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that additionally requires the admin role claim.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// extractClaims pulls the token from the accessToken cookie (browser clients)
// or the Authorization header (API clients) and validates it.
func (a *Auth) extractClaims(r *http.Request) (*jwt_internal.Claims, error) {
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, errors.NewUnauthorized("Please sign-in")
	}

	return a.jwtService.DecodeToken(tokenString)
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.extractClaims(r)
			if err != nil {
				utils.WriteError(w, err)
				return
			}

			if adminOnly && !claims.IsAdmin() {
				utils.WriteError(w, errors.NewUnauthorized("Access denied"))
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext retrieves the validated claims from the context.
func GetClaimsFromContext(r *http.Request) *jwt_internal.Claims {
	claims, ok := r.Context().Value(ClaimsKey).(*jwt_internal.Claims)
	if !ok {
		return nil
	}
	return claims
}
