package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/session"
)

// SessionVerifier resolves a bearer token into a session.
type SessionVerifier interface {
	CurrentSession(ctx context.Context, token string) (*session.Session, error)
}

type sessionKey struct{}
type tokenKey struct{}

// Authenticate extracts the bearer token and, when valid, attaches the
// session to the request context. Requests without a valid session pass
// through with no session; RequireRole decides what happens next.
func Authenticate(verifier SessionVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token != "" {
			if sess, err := verifier.CurrentSession(r.Context(), token); err == nil {
				ctx := context.WithValue(r.Context(), sessionKey{}, sess)
				ctx = context.WithValue(ctx, tokenKey{}, token)
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func sessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey{}).(*session.Session)
	return sess
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

type guardDecision int

const (
	decisionAllow guardDecision = iota
	decisionRedirectAuth
	decisionRedirectHome
)

// decide is the route guard policy: no session redirects to sign-in, a role
// mismatch redirects to the home route, a match renders. It is a pure
// function of (session, required role).
func decide(sess *session.Session, required domain.Role) guardDecision {
	if sess == nil {
		return decisionRedirectAuth
	}
	if required != "" && sess.Role != required {
		return decisionRedirectHome
	}
	return decisionAllow
}

// RequireRole gates a handler behind the route guard policy.
func RequireRole(required domain.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch decide(sessionFromContext(r.Context()), required) {
		case decisionRedirectAuth:
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
		case decisionRedirectHome:
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// RequireSession gates a handler behind any authenticated role.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/auth", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
