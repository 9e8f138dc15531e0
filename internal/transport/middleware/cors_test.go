package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tuanvng/kanjidex/internal/config"
)

func corsRequest(cfg config.CORSConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	called := false
	wrapped := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/kanji/jlpt/5", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	return rec, called
}

func TestCORS_Preflight(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins:   "https://kanji.example",
		AllowedMethods:   "GET,OPTIONS",
		AllowedHeaders:   "Authorization,Content-Type",
		AllowCredentials: true,
		MaxAge:           86400,
	}

	rec, called := corsRequest(cfg, http.MethodOptions, "https://kanji.example")

	if called {
		t.Error("handler must not run for preflight")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	want := map[string]string{
		"Access-Control-Allow-Origin":      "https://kanji.example",
		"Access-Control-Allow-Methods":     "GET,OPTIONS",
		"Access-Control-Allow-Headers":     "Authorization,Content-Type",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Max-Age":           "86400",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

func TestCORS_OriginMatching(t *testing.T) {
	tests := []struct {
		name        string
		allowed     string
		origin      string
		wantEcho    string
		credentials bool
	}{
		{"exact match", "https://kanji.example", "https://kanji.example", "https://kanji.example", true},
		{"second of list", "https://a.example, https://b.example", "https://b.example", "https://b.example", true},
		{"unknown origin", "https://kanji.example", "https://evil.example", "", true},
		{"wildcard echoes origin", "*", "https://anywhere.example", "https://anywhere.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.CORSConfig{
				AllowedOrigins:   tt.allowed,
				AllowedMethods:   "GET,OPTIONS",
				AllowedHeaders:   "Content-Type",
				AllowCredentials: tt.credentials,
				MaxAge:           3600,
			}

			rec, called := corsRequest(cfg, http.MethodGet, tt.origin)

			if !called {
				t.Error("non-preflight request must reach the handler")
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantEcho {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantEcho)
			}
			wantCred := ""
			if tt.credentials && tt.wantEcho != "" {
				wantCred = "true"
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != wantCred {
				t.Errorf("Access-Control-Allow-Credentials = %q, want %q", got, wantCred)
			}
		})
	}
}
