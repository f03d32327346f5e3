package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wisewallet/backend/logger"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Output: &buf, JSON: true})

	var ctxComponent string
	handler := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxComponent = logger.FromContext(r.Context()).Component()
		w.WriteHeader(http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/expenses/abc", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if ctxComponent != logger.ComponentHTTP {
		t.Errorf("Expected request logger in context, got component %q", ctxComponent)
	}
	if rr.Header().Get("X-Request-ID") != "req-1" {
		t.Errorf("Expected request id to be echoed, got %q", rr.Header().Get("X-Request-ID"))
	}

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "WARN" {
		t.Errorf("Expected WARN for a 404, got %v", entry["level"])
	}
	if entry["status"] != float64(404) || entry["path"] != "/expenses/abc" || entry["request_id"] != "req-1" {
		t.Errorf("Unexpected log fields: %v", entry)
	}
}

func TestRecover(t *testing.T) {
	testCases := []struct {
		name       string
		showDetail bool
		wantDetail bool
	}{
		{"development shows detail", true, true},
		{"production hides detail", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := Recover(tc.showDetail)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("boom")
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

			if rr.Code != http.StatusInternalServerError {
				t.Errorf("Expected status 500, got %d", rr.Code)
			}
			var body ErrorBody
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body.Message != "Something went wrong!" {
				t.Errorf("Expected generic message, got %q", body.Message)
			}
			if got := strings.Contains(body.Error, "boom"); got != tc.wantDetail {
				t.Errorf("Expected detail present=%v, got %q", tc.wantDetail, body.Error)
			}
		})
	}
}
