package http

import (
	"net/http"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/feed"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps collects everything the route table needs.
type RouterDeps struct {
	Auth          AuthService
	Sessions      SessionVerifier
	Admin         AdminEventService
	Stats         StatsService
	Directory     DirectoryService
	Registrations RegistrationWorkflow
	Hub           *feed.Hub
}

// NewRouter builds the route table with the guard applied per route group.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", HandleIndex())
	mux.HandleFunc("GET /health", HealthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("POST /auth/signup", HandleSignUp(deps.Auth))
	mux.Handle("POST /auth/signin", HandleSignIn(deps.Auth))
	mux.Handle("POST /auth/signout", HandleSignOut(deps.Auth))
	mux.Handle("GET /auth/session", RequireSession(HandleSession()))

	admin := func(h http.Handler) http.Handler { return RequireRole(domain.RoleAdmin, h) }
	mux.Handle("GET /admin", admin(HandleAdminStats(deps.Stats)))
	mux.Handle("GET /admin/events", admin(HandleAdminListEvents(deps.Admin)))
	mux.Handle("POST /admin/events", admin(HandleAdminCreateEvent(deps.Admin)))
	mux.Handle("PUT /admin/events/{id}", admin(HandleAdminUpdateEvent(deps.Admin)))
	mux.Handle("DELETE /admin/events/{id}", admin(HandleAdminDeleteEvent(deps.Admin)))
	mux.Handle("GET /admin/students", admin(HandleAdminListStudents(deps.Directory)))
	mux.Handle("GET /admin/students/{id}", admin(HandleAdminStudentRegistrations(deps.Directory)))

	student := func(h http.Handler) http.Handler { return RequireRole(domain.RoleStudent, h) }
	mux.Handle("GET /student", student(HandleStudentDashboard(deps.Registrations)))
	mux.Handle("GET /student/my-events", student(HandleMyEvents(deps.Registrations)))
	mux.Handle("POST /student/registrations", student(HandleRegister(deps.Registrations)))
	mux.Handle("DELETE /student/registrations/{event_id}", student(HandleUnregister(deps.Registrations)))

	mux.Handle("GET /realtime", RequireSession(HandleRealtime(deps.Hub)))

	mux.Handle("/", NotFoundHandler())

	return Authenticate(deps.Sessions, mux)
}
