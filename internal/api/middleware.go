package api

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// ctxKeyRequestID is the context key for the request ID.
	ctxKeyRequestID contextKey = "request_id"

	// ctxKeyUsername is the context key for the authenticated username.
	ctxKeyUsername contextKey = "username"
)

// requestIDMiddleware generates a unique request ID for each request.
// If the client sends an X-Request-ID header, it is used; otherwise one is generated.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = generateRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs each HTTP request with method, path, status, and duration.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", r.Context().Value(ctxKeyRequestID),
		)
	})
}

// recoveryMiddleware catches panics in handlers and returns a 500 response.
func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				s.logger.Error("panic recovered in HTTP handler",
					"error", err,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", r.Context().Value(ctxKeyRequestID),
				)
				writeRedfishError(w, http.StatusInternalServerError, codeGeneralError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// maxRequestBodySize is the maximum allowed request body size (1 MB).
const maxRequestBodySize = 1 << 20

// bodySizeLimitMiddleware limits the size of incoming request bodies to prevent
// denial-of-service attacks via oversized payloads.
func (s *Server) bodySizeLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		}
		next.ServeHTTP(w, r)
	})
}

// basicAuthMiddleware validates HTTP Basic credentials against the
// account store. A missing or malformed Authorization header is an
// insufficient-privilege error; wrong credentials are an invalid-token
// error, matching what real units return.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, err := parseBasicAuth(r.Header.Get("Authorization"))
		if err != "" {
			writeRedfishError(w, http.StatusUnauthorized, codeInsufficientPrivilege, err)
			return
		}

		account, authErr := s.auth.Authenticate(r.Context(), username, password)
		if authErr != nil {
			writeRedfishError(w, http.StatusUnauthorized, codeInvalidAuthToken, "Invalid credentials")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUsername, account.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenAuthMiddleware validates the X-Auth-Token header against live
// sessions. Used on write endpoints that real units gate behind a
// session token.
func (s *Server) tokenAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Auth-Token")
		if token == "" {
			writeRedfishError(w, http.StatusUnauthorized, codeInvalidAuthToken, "Missing X-Auth-Token")
			return
		}

		session, err := s.auth.ResolveToken(r.Context(), token)
		if err != nil {
			writeRedfishError(w, http.StatusUnauthorized, codeInvalidAuthToken, "Invalid X-Auth-Token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUsername, session.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseBasicAuth extracts credentials from a Basic Authorization header.
// Returns a non-empty error message on failure.
func parseBasicAuth(header string) (username, password, errMsg string) {
	if header == "" || !strings.HasPrefix(header, "Basic ") {
		return "", "", "Missing or invalid Authorization header (Basic required)"
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(strings.TrimPrefix(header, "Basic ")))
	if err != nil {
		return "", "", "Invalid Basic auth encoding"
	}
	credentials := string(raw)
	idx := strings.Index(credentials, ":")
	if idx < 0 {
		return "", "", "Invalid Basic auth format"
	}
	return credentials[:idx], credentials[idx+1:], ""
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// requestIDBytes is the number of random bytes used for request IDs.
const requestIDBytes = 8

// generateRequestID creates a random hex request ID.
func generateRequestID() string {
	b := make([]byte, requestIDBytes)
	//nolint:errcheck // crypto/rand.Read always returns len(b) on supported platforms
	rand.Read(b)
	return hex.EncodeToString(b)
}

// usernameFromContext returns the authenticated username, if any.
func usernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUsername).(string); ok {
		return v
	}
	return ""
}
