package app

import (
	"context"
	"strings"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/clock"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/session"
	"golang.org/x/crypto/bcrypt"
)

type AuthRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateAccount(ctx context.Context, account domain.Account) error
	CreateProfile(ctx context.Context, profile domain.Profile) error
	GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetProfile(ctx context.Context, accountID string) (*domain.Profile, error)
}

// AuthService is the session provider: it resolves credentials to a signed
// token and a derived role, and tears sessions down on sign-out.
type AuthService struct {
	repo     AuthRepository
	sessions *session.Manager
	clock    clock.Clock
}

func NewAuthService(repo AuthRepository, sessions *session.Manager, clk clock.Clock) *AuthService {
	return &AuthService{
		repo:     repo,
		sessions: sessions,
		clock:    clk,
	}
}

// Identity is a signed-in account as exposed to the transport layer.
type Identity struct {
	AccountID string
	Email     string
	FullName  string
	Role      domain.Role
	Token     string
}

type SignUpInput struct {
	Email    string
	Password string
	FullName string
}

// SignUp creates an account with a student profile and signs it in.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (Identity, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return Identity{}, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, err
	}

	account := domain.Account{
		ID:           newID(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}
	profile := domain.Profile{
		ID:       account.ID,
		FullName: strings.TrimSpace(in.FullName),
		Email:    email,
		Role:     domain.RoleStudent,
	}

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateAccount(txCtx, account); err != nil {
			return err
		}
		return s.repo.CreateProfile(txCtx, profile)
	})
	if err != nil {
		return Identity{}, err
	}

	return s.identityFor(account, &profile)
}

// SignIn checks credentials and derives the role from the linked profile.
// A missing profile defaults the role to student.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (Identity, error) {
	account, err := s.repo.GetAccountByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return Identity{}, err
	}
	if account == nil {
		return Identity{}, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Identity{}, domain.ErrInvalidCredentials
	}

	profile, err := s.repo.GetProfile(ctx, account.ID)
	if err != nil {
		return Identity{}, err
	}
	return s.identityFor(*account, profile)
}

// SignOut revokes the token. Signing out an already-invalid token is a no-op.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// CurrentSession resolves a token into the account it represents.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*session.Session, error) {
	return s.sessions.Verify(ctx, token)
}

func (s *AuthService) identityFor(account domain.Account, profile *domain.Profile) (Identity, error) {
	role := domain.DeriveRole(profile)
	token, err := s.sessions.Issue(account.ID, role)
	if err != nil {
		return Identity{}, err
	}

	fullName := ""
	if profile != nil {
		fullName = profile.FullName
	}
	return Identity{
		AccountID: account.ID,
		Email:     account.Email,
		FullName:  fullName,
		Role:      role,
		Token:     token,
	}, nil
}
