package app

import (
	"context"
	"testing"
	"time"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/clock"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/session"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, repo AuthRepository) *AuthService {
	t.Helper()
	clk := clock.NewFixed(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))
	sessions := session.NewManager([]byte("test-secret"), session.NewMemoryStore(), clk)
	return NewAuthService(repo, sessions, clk)
}

func TestAuthService_SignUp(t *testing.T) {
	t.Parallel()

	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)

	identity, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "  Asha@Campus.EDU ",
		Password: "hunter2!",
		FullName: "Asha Rao",
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if identity.Email != "asha@campus.edu" {
		t.Fatalf("expected normalized email, got %q", identity.Email)
	}
	if identity.Role != domain.RoleStudent {
		t.Fatalf("expected student role on signup, got %q", identity.Role)
	}
	if identity.Token == "" {
		t.Fatalf("expected a session token")
	}

	account, ok := repo.accounts[identity.Email]
	if !ok {
		t.Fatalf("expected account stored")
	}
	if account.PasswordHash == "hunter2!" {
		t.Fatalf("expected password to be hashed")
	}
	profile, ok := repo.profiles[account.ID]
	if !ok {
		t.Fatalf("expected profile stored")
	}
	if profile.Role != domain.RoleStudent {
		t.Fatalf("expected student profile, got %q", profile.Role)
	}

	if _, err := svc.SignUp(context.Background(), SignUpInput{Email: "", Password: "x"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
}

func TestAuthService_SignIn(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := newFakeAuthRepo()
	repo.accounts["dean@campus.edu"] = domain.Account{ID: "acct-1", Email: "dean@campus.edu", PasswordHash: string(hash)}
	repo.profiles["acct-1"] = domain.Profile{ID: "acct-1", FullName: "Dean Mills", Email: "dean@campus.edu", Role: domain.RoleAdmin}

	svc := newTestAuthService(t, repo)

	t.Run("correct credentials derive profile role", func(t *testing.T) {
		identity, err := svc.SignIn(context.Background(), "dean@campus.edu", "correct horse")
		if err != nil {
			t.Fatalf("signin: %v", err)
		}
		if identity.Role != domain.RoleAdmin {
			t.Fatalf("expected admin role, got %q", identity.Role)
		}
		if identity.FullName != "Dean Mills" {
			t.Fatalf("expected profile name, got %q", identity.FullName)
		}

		sess, err := svc.CurrentSession(context.Background(), identity.Token)
		if err != nil {
			t.Fatalf("verify issued token: %v", err)
		}
		if sess.AccountID != "acct-1" || sess.Role != domain.RoleAdmin {
			t.Fatalf("unexpected session %+v", sess)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.SignIn(context.Background(), "dean@campus.edu", "wrong"); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		if _, err := svc.SignIn(context.Background(), "nobody@campus.edu", "correct horse"); err != domain.ErrInvalidCredentials {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("missing profile defaults to student", func(t *testing.T) {
		repo.accounts["ghost@campus.edu"] = domain.Account{ID: "acct-2", Email: "ghost@campus.edu", PasswordHash: string(hash)}

		identity, err := svc.SignIn(context.Background(), "ghost@campus.edu", "correct horse")
		if err != nil {
			t.Fatalf("signin: %v", err)
		}
		if identity.Role != domain.RoleStudent {
			t.Fatalf("expected student fallback role, got %q", identity.Role)
		}
	})
}

func TestAuthService_SignOut(t *testing.T) {
	t.Parallel()

	repo := newFakeAuthRepo()
	svc := newTestAuthService(t, repo)

	identity, err := svc.SignUp(context.Background(), SignUpInput{Email: "a@campus.edu", Password: "pw", FullName: "A"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := svc.SignOut(context.Background(), identity.Token); err != nil {
		t.Fatalf("signout: %v", err)
	}
	if _, err := svc.CurrentSession(context.Background(), identity.Token); err != domain.ErrSessionInvalid {
		t.Fatalf("expected revoked token to be invalid, got %v", err)
	}

	// Signing out garbage is a no-op.
	if err := svc.SignOut(context.Background(), "not-a-token"); err != nil {
		t.Fatalf("expected no error for invalid token, got %v", err)
	}
}

type fakeAuthRepo struct {
	accounts map[string]domain.Account
	profiles map[string]domain.Profile
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{
		accounts: make(map[string]domain.Account),
		profiles: make(map[string]domain.Profile),
	}
}

func (f *fakeAuthRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeAuthRepo) CreateAccount(_ context.Context, account domain.Account) error {
	if _, ok := f.accounts[account.Email]; ok {
		return domain.ErrEmailTaken
	}
	f.accounts[account.Email] = account
	return nil
}

func (f *fakeAuthRepo) CreateProfile(_ context.Context, profile domain.Profile) error {
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeAuthRepo) GetAccountByEmail(_ context.Context, email string) (*domain.Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (f *fakeAuthRepo) GetProfile(_ context.Context, accountID string) (*domain.Profile, error) {
	profile, ok := f.profiles[accountID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}
