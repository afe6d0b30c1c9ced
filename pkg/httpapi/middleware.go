// Package httpapi exposes the dataset service over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/auth"
)

// Authenticator validates the credential found in the request context.
type Authenticator interface {
	Authenticate(ctx context.Context) (*auth.UserContext, error)
}

// RequestID ensures every request carries a correlation id, generating
// one when the caller did not send it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("correlation-id")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("correlation-id", id)
		}
		w.Header().Set("correlation-id", id)
		next.ServeHTTP(w, r)
	})
}

// Auth extracts a Bearer token or X-API-Key from the request, runs it
// through the configured authenticators and attaches the resulting
// identity to the context. With allowAnonymous false a request with no
// valid credential is rejected with 401.
func Auth(authenticators []Authenticator, allowAnonymous bool, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var token string
			if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
			if token == "" {
				token = r.Header.Get("X-API-Key")
			}

			if token != "" {
				ctx = auth.WithToken(ctx, token)
				for _, authenticator := range authenticators {
					uc, err := authenticator.Authenticate(ctx)
					if err == nil {
						next.ServeHTTP(w, r.WithContext(auth.WithUserContext(ctx, uc)))
						return
					}
				}
				log.Debug("credential rejected by all authenticators", "path", r.URL.Path)
			}

			if allowAnonymous || len(authenticators) == 0 {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			http.Error(w, "Unauthorized: missing or invalid credentials", http.StatusUnauthorized)
		})
	}
}
