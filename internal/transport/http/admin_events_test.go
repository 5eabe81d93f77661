package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/app"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/session"
)

type stubAdminService struct {
	created   domain.Event
	createErr error
	createdBy string
	updated   domain.Event
	updateErr error
	deleteErr error
	events    []domain.EventWithCount
}

func (s *stubAdminService) CreateEvent(_ context.Context, createdBy string, _ app.EventInput) (domain.Event, error) {
	s.createdBy = createdBy
	return s.created, s.createErr
}

func (s *stubAdminService) UpdateEvent(_ context.Context, _ string, _ app.EventInput) (domain.Event, error) {
	return s.updated, s.updateErr
}

func (s *stubAdminService) DeleteEvent(_ context.Context, _ string) error {
	return s.deleteErr
}

func (s *stubAdminService) ListEvents(_ context.Context) ([]domain.EventWithCount, error) {
	return s.events, nil
}

func adminRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	sess := &session.Session{AccountID: "admin-1", Role: domain.RoleAdmin}
	return req.WithContext(context.WithValue(req.Context(), sessionKey{}, sess))
}

const validEventBody = `{
	"title": "Hack Day",
	"category": "hackathon",
	"venue": "Main Hall",
	"start_date": "2025-03-01T09:00:00Z",
	"end_date": "2025-03-01T18:00:00Z",
	"max_participants": 2
}`

func TestHandleAdminCreateEvent(t *testing.T) {
	t.Parallel()

	t.Run("creates event owned by the session admin", func(t *testing.T) {
		t.Parallel()
		svc := &stubAdminService{created: domain.Event{ID: "event-1", Title: "Hack Day"}}

		rec := httptest.NewRecorder()
		HandleAdminCreateEvent(svc).ServeHTTP(rec, adminRequest(http.MethodPost, "/admin/events", validEventBody))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.createdBy != "admin-1" {
			t.Fatalf("expected creator from session, got %q", svc.createdBy)
		}
		var resp eventResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.ID != "event-1" {
			t.Fatalf("unexpected response %+v", resp)
		}
	})

	t.Run("malformed date returns 400", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		body := `{"title":"X","start_date":"tomorrow","end_date":"2025-03-01T18:00:00Z"}`
		HandleAdminCreateEvent(&stubAdminService{}).ServeHTTP(rec, adminRequest(http.MethodPost, "/admin/events", body))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Code != codeInvalidDate {
			t.Fatalf("expected code %q, got %q", codeInvalidDate, resp.Code)
		}
	})

	t.Run("missing dates return 400", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		HandleAdminCreateEvent(&stubAdminService{}).ServeHTTP(rec, adminRequest(http.MethodPost, "/admin/events", `{"title":"X"}`))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("service validation error maps to 400", func(t *testing.T) {
		t.Parallel()
		svc := &stubAdminService{createErr: domain.ErrInvalidCategory}

		rec := httptest.NewRecorder()
		HandleAdminCreateEvent(svc).ServeHTTP(rec, adminRequest(http.MethodPost, "/admin/events", validEventBody))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestHandleAdminUpdateEvent(t *testing.T) {
	t.Parallel()

	t.Run("updates by path id", func(t *testing.T) {
		t.Parallel()
		svc := &stubAdminService{updated: domain.Event{ID: "event-1", Title: "Renamed"}}
		mux := http.NewServeMux()
		mux.Handle("PUT /admin/events/{id}", HandleAdminUpdateEvent(svc))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, adminRequest(http.MethodPut, "/admin/events/event-1", validEventBody))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown event returns 404", func(t *testing.T) {
		t.Parallel()
		svc := &stubAdminService{updateErr: domain.ErrEventNotFound}
		mux := http.NewServeMux()
		mux.Handle("PUT /admin/events/{id}", HandleAdminUpdateEvent(svc))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, adminRequest(http.MethodPut, "/admin/events/ghost", validEventBody))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandleAdminDeleteEvent(t *testing.T) {
	t.Parallel()

	t.Run("deletes and returns 204", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		mux.Handle("DELETE /admin/events/{id}", HandleAdminDeleteEvent(&stubAdminService{}))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, adminRequest(http.MethodDelete, "/admin/events/event-1", ""))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("unknown event returns 404", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		mux.Handle("DELETE /admin/events/{id}", HandleAdminDeleteEvent(&stubAdminService{deleteErr: domain.ErrEventNotFound}))

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, adminRequest(http.MethodDelete, "/admin/events/ghost", ""))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestHandleAdminListEvents(t *testing.T) {
	t.Parallel()

	cap1 := 1
	svc := &stubAdminService{events: []domain.EventWithCount{
		{Event: domain.Event{ID: "event-1", Title: "Full House", MaxParticipants: &cap1}, RegisteredCount: 1},
		{Event: domain.Event{ID: "event-2", Title: "Open Mic"}, RegisteredCount: 5},
	}}

	rec := httptest.NewRecorder()
	HandleAdminListEvents(svc).ServeHTTP(rec, adminRequest(http.MethodGet, "/admin/events", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []eventWithCountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 events, got %d", len(resp))
	}
	if !resp[0].Full {
		t.Fatalf("expected event at capacity to be full")
	}
	if resp[1].Full {
		t.Fatalf("expected unlimited event to never be full")
	}
}
