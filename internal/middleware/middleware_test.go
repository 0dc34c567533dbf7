package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmynk/mealplanner/internal/auth"
	"github.com/mmynk/mealplanner/internal/models"
)

func TestAuthenticate(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "user@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var seenUserID string
	handler := Authenticate(jwtManager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{"no credentials pass through anonymously", "", http.StatusTeapot, ""},
		{"valid token sets identity", "Bearer " + token, http.StatusTeapot, "user-1"},
		{"scheme is case-insensitive", "bearer " + token, http.StatusTeapot, "user-1"},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/meal-plans", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if seenUserID != tt.wantUserID {
				t.Errorf("user id: got %q, want %q", seenUserID, tt.wantUserID)
			}
		})
	}
}

func TestAuthenticateSkipsPrefixes(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	called := false
	handler := Authenticate(jwtManager, "/mealplan.v1.MealPlanService/")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if id := GetUserID(r.Context()); id != "" {
			t.Errorf("skipped path should carry no identity, got %q", id)
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/mealplan.v1.MealPlanService/ListMealPlans", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusTeapot {
		t.Errorf("expected pass-through, got status %d (called=%v)", rec.Code, called)
	}

	req = httptest.NewRequest(http.MethodGet, "/meal-plans", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("REST path: got %d, want 401", rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	t.Run("generates request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/meal-plans", nil))

		if rec.Code != http.StatusCreated {
			t.Errorf("status: got %d, want %d", rec.Code, http.StatusCreated)
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
	})

	t.Run("echoes client request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/meal-plans", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
			t.Errorf("X-Request-ID: got %q", got)
		}
	})
}

func TestCORSPreflight(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/meal-plans/1", nil))

	if called {
		t.Error("preflight should not reach the handler")
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}
}
