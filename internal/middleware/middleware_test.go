package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "valid inbound id is kept", inbound: "6ba7b810-9dad-11d1-80b4-00c04fd430c8", reuse: true},
		{name: "garbage is replaced", inbound: "<script>", reuse: false},
		{name: "missing is generated", inbound: "", reuse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.inbound != "" {
				req.Header.Set("X-Request-ID", tt.inbound)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen == "" {
				t.Fatal("request ID missing from context")
			}
			if got := rec.Header().Get("X-Request-ID"); got != seen {
				t.Errorf("header got %q, context has %q", got, seen)
			}
			if (seen == tt.inbound) != tt.reuse {
				t.Errorf("id got %q, inbound %q, reuse want %v", seen, tt.inbound, tt.reuse)
			}
		})
	}
}

func TestRecovery_returns500(t *testing.T) {
	t.Parallel()

	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestLogging_capturesStatus(t *testing.T) {
	t.Parallel()

	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status got %d, want %d", rec.Code, http.StatusTeapot)
	}
}
