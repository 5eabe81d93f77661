package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/app"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

// RegistrationWorkflow is the minimal interface for student endpoints.
type RegistrationWorkflow interface {
	Register(ctx context.Context, studentID, eventID string) (app.RegisterResult, error)
	Unregister(ctx context.Context, studentID, eventID string) (bool, error)
	Reconcile(ctx context.Context, studentID string) (app.Snapshot, error)
	MyEvents(ctx context.Context, studentID string) ([]domain.RegisteredEvent, error)
}

type eventViewResponse struct {
	eventWithCountResponse
	Registered bool `json:"registered"`
}

type snapshotResponse struct {
	TakenAt time.Time           `json:"taken_at"`
	Events  []eventViewResponse `json:"events"`
}

// HandleStudentDashboard returns a fresh reconcile snapshot: upcoming events
// with counts, fullness and the student's registered flags.
func HandleStudentDashboard(svc RegistrationWorkflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil {
			writeDomainError(w, domain.ErrSessionInvalid)
			return
		}

		snapshot, err := svc.Reconcile(r.Context(), sess.AccountID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		events := make([]eventViewResponse, 0, len(snapshot.Events))
		for _, view := range snapshot.Events {
			events = append(events, eventViewResponse{
				eventWithCountResponse: eventWithCountResponse{
					eventResponse:   eventPayload(view.Event),
					RegisteredCount: view.RegisteredCount,
					Full:            view.Full,
				},
				Registered: view.Registered,
			})
		}
		writeJSON(w, http.StatusOK, snapshotResponse{TakenAt: snapshot.TakenAt, Events: events})
	}
}

// HandleMyEvents lists the student's registrations, newest first.
func HandleMyEvents(svc RegistrationWorkflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil {
			writeDomainError(w, domain.ErrSessionInvalid)
			return
		}

		regs, err := svc.MyEvents(r.Context(), sess.AccountID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, registeredEventsPayload(regs))
	}
}

type registerRequest struct {
	EventID string `json:"event_id"`
}

type registerResponse struct {
	RegistrationID    string `json:"registration_id,omitempty"`
	EventID           string `json:"event_id"`
	AlreadyRegistered bool   `json:"already_registered"`
}

// HandleRegister registers the signed-in student for an event. A duplicate
// registration is reported as a benign already-registered outcome, not an
// error.
func HandleRegister(svc RegistrationWorkflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil {
			writeDomainError(w, domain.ErrSessionInvalid)
			return
		}

		var req registerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.EventID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidID, "event_id is required")
			return
		}

		result, err := svc.Register(r.Context(), sess.AccountID, req.EventID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if result.AlreadyRegistered {
			writeJSON(w, http.StatusOK, registerResponse{
				EventID:           req.EventID,
				AlreadyRegistered: true,
			})
			return
		}
		writeJSON(w, http.StatusCreated, registerResponse{
			RegistrationID: result.Registration.ID,
			EventID:        result.Registration.EventID,
		})
	}
}

type unregisterResponse struct {
	EventID string `json:"event_id"`
	Removed bool   `json:"removed"`
}

// HandleUnregister removes the student's registration; repeating it is not
// an error.
func HandleUnregister(svc RegistrationWorkflow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil {
			writeDomainError(w, domain.ErrSessionInvalid)
			return
		}

		eventID := r.PathValue("event_id")
		removed, err := svc.Unregister(r.Context(), sess.AccountID, eventID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, unregisterResponse{EventID: eventID, Removed: removed})
	}
}
