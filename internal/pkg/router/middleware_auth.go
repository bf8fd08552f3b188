package router

import (
	"net/http"
	"strings"

	"github.com/dtg-lucifer/latent-ticket-booking-system/internal/pkg/jwt"
)

// middlewareAuthentication enforces a bearer session credential on every
// route except the ones listed as public (the OTP flow itself and health).
// Verified claims are stored on the request context for the handlers.
func middlewareAuthentication(verifier jwt.JWT, publicEndpoints map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(publicEndpoints, r.Method, matchedRoutePath(r)) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeJSON(w, errorResponse{Message: "Authentication required"}, http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeJSON(w, errorResponse{Message: "Invalid or expired token"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}

func isPublic(endpoints map[string]map[string]struct{}, method, path string) bool {
	paths, ok := endpoints[method]
	if !ok {
		return false
	}

	_, ok = paths[path]
	return ok
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
