package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/osse101/geotreasure/internal/auth"
	"github.com/osse101/geotreasure/internal/logger"
)

// AuthMiddleware resolves the bearer token to an owner id and stores it in the
// request context. Public routes pass through untouched; failures are counted
// against the client IP.
func AuthMiddleware(tokens *auth.TokenService, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			owner, err := bearerOwner(tokens, r.Header.Get(HeaderAuthorization))
			if err != nil {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"ip", ip,
					"path", r.URL.Path,
					"has_token", r.Header.Get(HeaderAuthorization) != "",
					"error", err)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithOwner(r.Context(), owner)))
		})
	}
}

func bearerOwner(tokens *auth.TokenService, header string) (string, error) {
	token, ok := strings.CutPrefix(header, BearerPrefix)
	if !ok {
		return "", auth.ErrUnauthenticated
	}
	claims, err := tokens.Parse(strings.TrimSpace(token))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func isPublic(r *http.Request) bool {
	under := func(prefix string) bool { return strings.HasPrefix(r.URL.Path, prefix) }
	if slices.ContainsFunc(PublicPaths, under) {
		return true
	}
	readOnly := r.Method == http.MethodGet || r.Method == http.MethodHead
	return readOnly && slices.ContainsFunc(PublicReadPaths, under)
}

// RequireAdmin lets through only the configured admin. An empty adminID locks
// the route for everyone.
func RequireAdmin(adminID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, _ := auth.OwnerFromContext(r.Context())
			if adminID == "" || owner != adminID {
				logger.FromContext(r.Context()).Warn(LogMsgAdminDenied, "owner_id", owner, "path", r.URL.Path)
				http.Error(w, ErrMsgForbidden, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
