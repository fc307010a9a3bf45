// ABOUTME: HTTP middleware forming the authorization gateway for admin endpoints
// ABOUTME: Validates bearer JWTs and rejects uniformly regardless of the failing check

package auth

import (
	"log/slog"
	"net/http"
	"strings"
)

// unauthorizedBody is the single response body for every rejected request.
// A missing header, a malformed token, an expired token, and an identity
// mismatch are indistinguishable to the caller; the specific cause goes to
// the server log only. Clients receiving it are expected to discard their
// stored token and re-authenticate.
const unauthorizedBody = `{"error":"unauthorized"}`

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Middleware creates an HTTP middleware that extracts and validates admin
// bearer tokens. Beyond signature and expiry, the token's subject must be
// the provisioned administrator; any other identity is rejected the same
// way as an invalid token. On success the administrator's AuthContext is
// attached to the request context.
func Middleware(adminUsername string, verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				rejectUnauthorized(w, logger, r, errMsg)
				return
			}

			subject, err := verifier.Verify(token)
			if err != nil {
				rejectUnauthorized(w, logger, r, err.Error())
				return
			}

			if subject != adminUsername {
				rejectUnauthorized(w, logger, r, "token subject is not the administrator")
				return
			}

			authCtx := &AuthContext{Username: subject}
			next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), authCtx)))
		})
	}
}

func rejectUnauthorized(w http.ResponseWriter, logger *slog.Logger, r *http.Request, reason string) {
	logger.Info("request rejected", "path", r.URL.Path, "reason", reason)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}
