package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/clock"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

const defaultTokenTTL = 12 * time.Hour

// Claims are the JWT claims carried by a session token.
type Claims struct {
	AccountID string      `json:"account_id"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Session is the verified state of a token.
type Session struct {
	AccountID string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

// Manager issues and verifies session tokens. Sign-out revokes the token's id
// in the store until the token would have expired anyway.
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  RevocationStore
	clock  clock.Clock
}

type ManagerOption func(*Manager)

// WithTokenTTL overrides the default session lifetime.
func WithTokenTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

func NewManager(secret []byte, store RevocationStore, clk clock.Clock, opts ...ManagerOption) *Manager {
	m := &Manager{
		secret: secret,
		ttl:    defaultTokenTTL,
		store:  store,
		clock:  clk,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue signs a token for the account.
func (m *Manager) Issue(accountID string, role domain.Role) (string, error) {
	now := m.clock.Now()
	claims := Claims{
		AccountID: accountID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify parses the token and checks it has not been revoked.
func (m *Manager) Verify(ctx context.Context, token string) (*Session, error) {
	claims, err := m.parse(token)
	if err != nil {
		return nil, domain.ErrSessionInvalid
	}
	revoked, err := m.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrSessionInvalid
	}
	return &Session{
		AccountID: claims.AccountID,
		Role:      claims.Role,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke invalidates the token until its natural expiry. Revoking a token
// that is already invalid or revoked is a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.store.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (m *Manager) parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.clock.Now))
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrSessionInvalid
	}
	return claims, nil
}
