package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/app"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/feed"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/session"
)

type stubDirectoryService struct{}

func (stubDirectoryService) ListStudents(_ context.Context) ([]domain.Profile, error) {
	return nil, nil
}

func (stubDirectoryService) StudentRegistrations(_ context.Context, _ string) ([]domain.RegisteredEvent, error) {
	return nil, nil
}

type stubStatsService struct{}

func (stubStatsService) Stats(_ context.Context) (app.Stats, error) {
	return app.Stats{Events: 3, Students: 10, Registrations: 7}, nil
}

type mapVerifier map[string]*session.Session

func (m mapVerifier) CurrentSession(_ context.Context, token string) (*session.Session, error) {
	if sess, ok := m[token]; ok {
		return sess, nil
	}
	return nil, domain.ErrSessionInvalid
}

func newTestRouter() http.Handler {
	hub := feed.NewHub()
	return NewRouter(RouterDeps{
		Auth:     &stubAuthService{},
		Sessions: mapVerifier{
			"admin-token":   {AccountID: "admin-1", Role: domain.RoleAdmin},
			"student-token": {AccountID: "student-1", Role: domain.RoleStudent},
		},
		Admin:         &stubAdminService{},
		Stats:         stubStatsService{},
		Directory:     stubDirectoryService{},
		Registrations: &stubWorkflow{},
		Hub:           hub,
	})
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", rec.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != codeNotFound {
		t.Fatalf("expected code %q, got %q", codeNotFound, resp.Code)
	}
}

func TestRouter_Index(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"anonymous gets welcome json", "", http.StatusOK, ""},
		{"admin redirected to admin home", "admin-token", http.StatusSeeOther, "/admin"},
		{"student redirected to student home", "student-token", http.StatusSeeOther, "/student"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			newTestRouter().ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			if tc.wantLocation != "" {
				if got := rec.Header().Get("Location"); got != tc.wantLocation {
					t.Fatalf("expected redirect to %q, got %q", tc.wantLocation, got)
				}
			}
		})
	}
}

// Route access by role across the admin and student groups.
func TestRouter_RoleGates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		target       string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{"admin route without session", "/admin", "", http.StatusSeeOther, "/auth"},
		{"admin route as student", "/admin", "student-token", http.StatusSeeOther, "/"},
		{"admin route as admin", "/admin", "admin-token", http.StatusOK, ""},
		{"student route without session", "/student", "", http.StatusSeeOther, "/auth"},
		{"student route as admin", "/student", "admin-token", http.StatusSeeOther, "/"},
		{"student route as student", "/student", "student-token", http.StatusOK, ""},
		{"session route without session", "/auth/session", "", http.StatusSeeOther, "/auth"},
		{"session route with any role", "/auth/session", "student-token", http.StatusOK, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()
			newTestRouter().ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body.String())
			}
			if tc.wantLocation != "" {
				if got := rec.Header().Get("Location"); got != tc.wantLocation {
					t.Fatalf("expected redirect to %q, got %q", tc.wantLocation, got)
				}
			}
		})
	}
}

func TestRouter_AdminStats(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Events != 3 || resp.Students != 10 || resp.Registrations != 7 {
		t.Fatalf("unexpected stats %+v", resp)
	}
}
