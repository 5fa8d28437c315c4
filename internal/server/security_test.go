package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// passThrough invokes the middleware around a recording next handler and
// returns the response recorder plus whether next ran.
func passThrough(cfg SecurityConfig, method, origin string) (*httptest.ResponseRecorder, bool) {
	nextCalled := false
	handler := SecurityMiddleware(cfg, func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(method, "/api/v1/sequence", http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec, nextCalled
}

func TestDefaultSecurityConfig(t *testing.T) {
	cfg := DefaultSecurityConfig()

	if !cfg.EnableCORS {
		t.Error("CORS should be enabled by default")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want the wildcard", cfg.AllowedOrigins)
	}
	if cfg.MaxSpan != 1_000_000 {
		t.Errorf("MaxSpan = %d, want 1_000_000", cfg.MaxSpan)
	}

	seen := map[string]bool{}
	for _, m := range cfg.AllowedMethods {
		seen[m] = true
	}
	for _, m := range []string{"GET", "POST", "OPTIONS"} {
		if !seen[m] {
			t.Errorf("AllowedMethods = %v, missing %s", cfg.AllowedMethods, m)
		}
	}
	if len(cfg.AllowedMethods) != 3 {
		t.Errorf("AllowedMethods = %v, want exactly GET, POST, OPTIONS", cfg.AllowedMethods)
	}
}

func TestSecurityMiddleware_Headers(t *testing.T) {
	rec, nextCalled := passThrough(DefaultSecurityConfig(), "GET", "")

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"X-XSS-Protection":        "1; mode=block",
		"Referrer-Policy":         "strict-origin-when-cross-origin",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
	if !nextCalled {
		t.Error("next handler was not called")
	}
}

// Headers apply to every method, not just the API's own verbs.
func TestSecurityMiddleware_HeadersOnAllMethods(t *testing.T) {
	for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH"} {
		t.Run(method, func(t *testing.T) {
			rec, nextCalled := passThrough(DefaultSecurityConfig(), method, "")
			if !nextCalled {
				t.Errorf("next handler should run for %s", method)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Errorf("security headers missing for %s", method)
			}
		})
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	studioOrigin := "https://studio.fizzlab.dev"
	otherOrigin := "https://evil.example.com"

	corsFor := func(origins ...string) SecurityConfig {
		return SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST"},
		}
	}

	tests := []struct {
		name       string
		cfg        SecurityConfig
		origin     string
		wantOrigin string // "" means no CORS headers expected
	}{
		{"disabled emits nothing", SecurityConfig{EnableCORS: false}, studioOrigin, ""},
		{"wildcard allows anyone", corsFor("*"), otherOrigin, "*"},
		{"exact origin allowed", corsFor(studioOrigin), studioOrigin, studioOrigin},
		{"unlisted origin denied", corsFor(studioOrigin), otherOrigin, ""},
		{"first of several origins", corsFor(studioOrigin, "https://alt.fizzlab.dev"), studioOrigin, studioOrigin},
		{"second of several origins", corsFor(studioOrigin, "https://alt.fizzlab.dev"), "https://alt.fizzlab.dev", "https://alt.fizzlab.dev"},
		{"no origin header with wildcard", corsFor("*"), "", "*"},
		{"no origin header with explicit list", corsFor(studioOrigin), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := passThrough(tt.cfg, "GET", tt.origin)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if tt.wantOrigin == "" {
				return
			}
			for _, h := range []string{
				"Access-Control-Allow-Methods",
				"Access-Control-Allow-Headers",
				"Access-Control-Max-Age",
			} {
				if rec.Header().Get(h) == "" {
					t.Errorf("%s should be set alongside the origin", h)
				}
			}
		})
	}
}

func TestSecurityMiddleware_Preflight(t *testing.T) {
	rec, nextCalled := passThrough(DefaultSecurityConfig(), "OPTIONS", "https://studio.fizzlab.dev")

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if nextCalled {
		t.Error("next handler should not run for OPTIONS")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("preflight response should carry the CORS headers")
	}
}

func TestSecurityMiddleware_PassesResponseThrough(t *testing.T) {
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %q, the middleware must not alter it", rec.Body.String())
	}
}
