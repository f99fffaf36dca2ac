package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/seekers/backend/internal/model"
	"github.com/seekers/backend/internal/repository"
)

func TestCORS_SetsHeaders(t *testing.T) {
	h := New(&mockDB{}, "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.CORS(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/api/packages", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("expected origin http://localhost:3000, got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("expected credentials=true, got %q", got)
	}
}

func TestCORS_OptionsPreflight(t *testing.T) {
	h := New(&mockDB{}, "http://localhost:3000")

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	rec := httptest.NewRecorder()
	h.CORS(inner).ServeHTTP(rec, httptest.NewRequest("OPTIONS", "/api/media", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for OPTIONS, got %d", rec.Code)
	}
	if called {
		t.Error("inner handler should not be called for OPTIONS preflight")
	}
}

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", model.Invalid("title", "is required"), 400, "title: is required"},
		{"wrapped validation", fmt.Errorf("create: %w", model.Invalid("price", "must not be negative")), 400, "price: must not be negative"},
		{"not found", repository.ErrNotFound, 404, "not_found"},
		{"infrastructure", errors.New("connection reset"), 500, "update_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tc.err, "update", "id", "x")
			if rec.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if got := errorCode(t, rec); got != tc.wantBody {
				t.Errorf("expected error %q, got %q", tc.wantBody, got)
			}
		})
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/media", strings.NewReader("{not json"))
	var v map[string]any
	if decodeJSON(rec, req, &v) {
		t.Fatal("expected decode failure")
	}
	if rec.Code != http.StatusBadRequest || errorCode(t, rec) != "invalid_json" {
		t.Errorf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

// errorCode decodes {"error": ...} from a response.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, rec.Body.String())
	}
	return body["error"]
}
