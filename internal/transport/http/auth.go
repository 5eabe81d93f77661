package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/app"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

// AuthService is the minimal interface needed by the auth endpoints.
type AuthService interface {
	SignUp(ctx context.Context, in app.SignUpInput) (app.Identity, error)
	SignIn(ctx context.Context, email, password string) (app.Identity, error)
	SignOut(ctx context.Context, token string) error
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityResponse struct {
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// HandleSignUp creates an account with a student profile and signs it in.
func HandleSignUp(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, codeInvalidCredentials, "email and password are required")
			return
		}

		identity, err := svc.SignUp(r.Context(), app.SignUpInput{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, identityPayload(identity))
	}
}

// HandleSignIn resolves credentials to a session token and derived role.
func HandleSignIn(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		identity, err := svc.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, identityPayload(identity))
	}
}

// HandleSignOut revokes the current token. Always succeeds from the caller's
// perspective; repeated sign-out is a no-op.
func HandleSignOut(svc AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token != "" {
			if err := svc.SignOut(r.Context(), token); err != nil {
				writeDomainError(w, err)
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type sessionResponse struct {
	AccountID string    `json:"account_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleSession reports the current session. The guard has already verified
// the token by the time this runs.
func HandleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil {
			writeDomainError(w, domain.ErrSessionInvalid)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{
			AccountID: sess.AccountID,
			Role:      string(sess.Role),
			ExpiresAt: sess.ExpiresAt,
		})
	}
}

func identityPayload(identity app.Identity) identityResponse {
	return identityResponse{
		AccountID: identity.AccountID,
		Email:     identity.Email,
		FullName:  identity.FullName,
		Role:      string(identity.Role),
		Token:     identity.Token,
	}
}
