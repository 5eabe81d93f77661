package http

import (
	"net/http"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

// HandleIndex is the public landing route. Authenticated callers are
// redirected to their home route by role.
func HandleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess := sessionFromContext(r.Context()); sess != nil {
			home := "/student"
			if sess.Role == domain.RoleAdmin {
				home = "/admin"
			}
			http.Redirect(w, r, home, http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"name":    "campus-event-hub",
			"message": "sign in at /auth/signin to browse and register for events",
		})
	}
}
