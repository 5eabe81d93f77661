package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		allowed    []string
		origin     string
		preflight  bool
		wantStatus int
		wantHeader string
	}{
		{
			name:       "allowed origin echoes back",
			allowed:    []string{"http://localhost:5173"},
			origin:     "http://localhost:5173",
			wantStatus: http.StatusOK,
			wantHeader: "http://localhost:5173",
		},
		{
			name:       "wildcard allows any origin",
			allowed:    []string{"*"},
			origin:     "http://evil.example",
			wantStatus: http.StatusOK,
			wantHeader: "*",
		},
		{
			name:       "unlisted origin gets no header",
			allowed:    []string{"http://localhost:5173"},
			origin:     "http://evil.example",
			wantStatus: http.StatusOK,
			wantHeader: "",
		},
		{
			name:       "no origin header passes through",
			allowed:    []string{"http://localhost:5173"},
			origin:     "",
			wantStatus: http.StatusOK,
			wantHeader: "",
		},
		{
			name:       "preflight from allowed origin",
			allowed:    []string{"http://localhost:5173"},
			origin:     "http://localhost:5173",
			preflight:  true,
			wantStatus: http.StatusNoContent,
			wantHeader: "http://localhost:5173",
		},
		{
			name:       "preflight from unlisted origin is rejected",
			allowed:    []string{"http://localhost:5173"},
			origin:     "http://evil.example",
			preflight:  true,
			wantStatus: http.StatusForbidden,
			wantHeader: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			method := http.MethodGet
			if tc.preflight {
				method = http.MethodOptions
			}
			req := httptest.NewRequest(method, "/health", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			CORS(tc.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.wantHeader {
				t.Fatalf("expected allow-origin %q, got %q", tc.wantHeader, got)
			}
		})
	}
}
