package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		allowed   []string
		method    string
		origin    string
		preflight bool
		wantCode  int
		wantAllow string
		wantVary  bool
	}{
		{
			name:      "configured origin",
			allowed:   []string{"https://market.example.com/"},
			method:    http.MethodGet,
			origin:    "https://market.example.com",
			wantCode:  http.StatusOK,
			wantAllow: "https://market.example.com",
			wantVary:  true,
		},
		{
			name:      "wildcard preflight",
			allowed:   []string{" * "},
			method:    http.MethodOptions,
			origin:    "https://market.example.com",
			preflight: true,
			wantCode:  http.StatusNoContent,
			wantAllow: "*",
		},
		{
			name:     "unconfigured origin",
			allowed:  []string{"https://allowed.example.com"},
			method:   http.MethodGet,
			origin:   "https://other.example.com",
			wantCode: http.StatusOK,
		},
		{
			name:     "no origin header",
			allowed:  []string{"*"},
			method:   http.MethodGet,
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/v1/me/team", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			rec := httptest.NewRecorder()

			CORS(tt.allowed, okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status=%d want=%d", rec.Code, tt.wantCode)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Fatalf("Access-Control-Allow-Origin=%q want=%q", got, tt.wantAllow)
			}
			if got := rec.Header().Get("Vary") == "Origin"; got != tt.wantVary {
				t.Fatalf("Vary Origin=%v want=%v", got, tt.wantVary)
			}
		})
	}
}
