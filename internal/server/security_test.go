package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	middleware := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())

	handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{
			name:           "valid API key",
			providedKey:    apiKey,
			path:           "/api/v1/summary/",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid API key",
			providedKey:    "wrong-key",
			path:           "/api/v1/admin/advance-day",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing API key",
			path:           "/api/v1/jobs/assign",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "healthz is public",
			path:           "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "readyz is public",
			path:           "/readyz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics is public",
			path:           "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "version is public",
			path:           "/version",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestExtractIP(t *testing.T) {
	t.Run("untrusted peer ignores forwarded header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "203.0.113.7:4410"
		req.Header.Set(HeaderForwardedFor, "198.51.100.1")

		assert.Equal(t, "203.0.113.7", extractIP(req, nil))
	})

	t.Run("trusted proxy uses rightmost forwarded hop", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "10.0.0.1:4410"
		req.Header.Set(HeaderForwardedFor, "198.51.100.1, 198.51.100.2")

		assert.Equal(t, "198.51.100.2", extractIP(req, []string{"10.0.0.1"}))
	})
}
