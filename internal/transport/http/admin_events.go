package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/app"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

// AdminEventService is the minimal interface needed for admin event endpoints.
type AdminEventService interface {
	CreateEvent(ctx context.Context, createdBy string, in app.EventInput) (domain.Event, error)
	UpdateEvent(ctx context.Context, id string, in app.EventInput) (domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]domain.EventWithCount, error)
}

type eventRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Venue           string `json:"venue"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	MaxParticipants *int   `json:"max_participants"`
}

// parse validates field shapes only; the service owns the semantic checks.
func (r eventRequest) parse() (app.EventInput, error) {
	if r.StartDate == "" || r.EndDate == "" {
		return app.EventInput{}, domain.ErrDatesRequired
	}
	start, err := time.Parse(time.RFC3339, r.StartDate)
	if err != nil {
		return app.EventInput{}, errInvalidDate
	}
	end, err := time.Parse(time.RFC3339, r.EndDate)
	if err != nil {
		return app.EventInput{}, errInvalidDate
	}
	return app.EventInput{
		Title:           r.Title,
		Description:     r.Description,
		Category:        domain.Category(r.Category),
		Venue:           r.Venue,
		StartDate:       start,
		EndDate:         end,
		MaxParticipants: r.MaxParticipants,
	}, nil
}

type eventResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	Venue           string    `json:"venue"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MaxParticipants *int      `json:"max_participants"`
	CreatedAt       time.Time `json:"created_at"`
}

type eventWithCountResponse struct {
	eventResponse
	RegisteredCount int  `json:"registered_count"`
	Full            bool `json:"full"`
}

// HandleAdminListEvents returns every event with its registration count.
func HandleAdminListEvents(svc AdminEventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.ListEvents(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp := make([]eventWithCountResponse, 0, len(events))
		for _, ev := range events {
			resp = append(resp, eventWithCountResponse{
				eventResponse:   eventPayload(ev.Event),
				RegisteredCount: ev.RegisteredCount,
				Full:            ev.Full(),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleAdminCreateEvent creates an event owned by the signed-in admin.
func HandleAdminCreateEvent(svc AdminEventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil {
			writeDomainError(w, domain.ErrSessionInvalid)
			return
		}

		in, ok := decodeEventRequest(w, r)
		if !ok {
			return
		}

		event, err := svc.CreateEvent(r.Context(), sess.AccountID, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, eventPayload(event))
	}
}

// HandleAdminUpdateEvent replaces the event's editable fields.
func HandleAdminUpdateEvent(svc AdminEventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		in, ok := decodeEventRequest(w, r)
		if !ok {
			return
		}

		event, err := svc.UpdateEvent(r.Context(), id, in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eventPayload(event))
	}
}

// HandleAdminDeleteEvent deletes the event; registrations cascade.
func HandleAdminDeleteEvent(svc AdminEventService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func decodeEventRequest(w http.ResponseWriter, r *http.Request) (app.EventInput, bool) {
	var req eventRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
		return app.EventInput{}, false
	}
	in, err := req.parse()
	if err != nil {
		if err == errInvalidDate {
			writeError(w, http.StatusBadRequest, codeInvalidDate, "dates must be RFC 3339 timestamps")
		} else {
			writeDomainError(w, err)
		}
		return app.EventInput{}, false
	}
	return in, true
}

func eventPayload(event domain.Event) eventResponse {
	return eventResponse{
		ID:              event.ID,
		Title:           event.Title,
		Description:     event.Description,
		Category:        string(event.Category),
		Venue:           event.Venue,
		StartDate:       event.StartDate,
		EndDate:         event.EndDate,
		MaxParticipants: event.MaxParticipants,
		CreatedAt:       event.CreatedAt,
	}
}
