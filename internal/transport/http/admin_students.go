package http

import (
	"context"
	"net/http"
	"time"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/app"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

// DirectoryService is the minimal interface for the admin student directory.
type DirectoryService interface {
	ListStudents(ctx context.Context) ([]domain.Profile, error)
	StudentRegistrations(ctx context.Context, studentID string) ([]domain.RegisteredEvent, error)
}

// StatsService reports the admin dashboard totals.
type StatsService interface {
	Stats(ctx context.Context) (app.Stats, error)
}

type studentResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type registeredEventResponse struct {
	RegistrationID string        `json:"registration_id"`
	RegisteredAt   time.Time     `json:"registered_at"`
	Event          eventResponse `json:"event"`
}

// HandleAdminListStudents lists every student profile.
func HandleAdminListStudents(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := svc.ListStudents(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		resp := make([]studentResponse, 0, len(students))
		for _, s := range students {
			resp = append(resp, studentResponse{ID: s.ID, FullName: s.FullName, Email: s.Email})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// HandleAdminStudentRegistrations lists one student's registrations with
// event summaries, ordered by event start time.
func HandleAdminStudentRegistrations(svc DirectoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		regs, err := svc.StudentRegistrations(r.Context(), r.PathValue("id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, registeredEventsPayload(regs))
	}
}

type statsResponse struct {
	Events        int `json:"events"`
	Students      int `json:"students"`
	Registrations int `json:"registrations"`
}

// HandleAdminStats returns the dashboard totals.
func HandleAdminStats(svc StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{
			Events:        stats.Events,
			Students:      stats.Students,
			Registrations: stats.Registrations,
		})
	}
}

func registeredEventsPayload(regs []domain.RegisteredEvent) []registeredEventResponse {
	resp := make([]registeredEventResponse, 0, len(regs))
	for _, re := range regs {
		resp = append(resp, registeredEventResponse{
			RegistrationID: re.RegistrationID,
			RegisteredAt:   re.RegisteredAt,
			Event:          eventPayload(re.Event),
		})
	}
	return resp
}
