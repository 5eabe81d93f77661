package app

import (
	"context"
	"time"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/clock"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/metrics"
)

type RegistrationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	CountForEvent(ctx context.Context, eventID string) (int, error)
	CreateRegistration(ctx context.Context, reg domain.Registration) error
	DeleteRegistration(ctx context.Context, eventID, studentID string) (bool, error)
	ListUpcomingWithCounts(ctx context.Context, now time.Time) ([]domain.EventWithCount, error)
	ListEventIDsForStudent(ctx context.Context, studentID string) ([]string, error)
	ListRegisteredEvents(ctx context.Context, studentID string) ([]domain.RegisteredEvent, error)
}

// RegistrationService owns the registration workflow: a student holds at most
// one registration per event and capacity is never exceeded. Both rules are
// enforced inside a single transaction that locks the event row, so the
// advisory client-side fullness check can race without over-filling events.
type RegistrationService struct {
	repo  RegistrationRepository
	clock clock.Clock
}

func NewRegistrationService(repo RegistrationRepository, clk clock.Clock) *RegistrationService {
	return &RegistrationService{
		repo:  repo,
		clock: clk,
	}
}

type RegisterResult struct {
	Registration domain.Registration
	// AlreadyRegistered is true when the student was registered before the
	// call. The duplicate insert is a benign outcome, not an error.
	AlreadyRegistered bool
}

func (s *RegistrationService) Register(ctx context.Context, studentID, eventID string) (RegisterResult, error) {
	if studentID == "" || eventID == "" {
		return RegisterResult{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result RegisterResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, eventID)
		if err != nil {
			return err
		}
		if event.Ended(now) {
			return domain.ErrEventEnded
		}

		count, err := s.repo.CountForEvent(txCtx, eventID)
		if err != nil {
			return err
		}
		if event.MaxParticipants != nil && count >= *event.MaxParticipants {
			return domain.ErrEventFull
		}

		reg := domain.Registration{
			ID:           newID(),
			EventID:      eventID,
			StudentID:    studentID,
			RegisteredAt: now,
		}
		if err := s.repo.CreateRegistration(txCtx, reg); err != nil {
			if err == domain.ErrAlreadyRegistered {
				result = RegisterResult{AlreadyRegistered: true}
				return nil
			}
			return err
		}

		result = RegisterResult{Registration: reg}
		return nil
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues(registerOutcome(err)).Inc()
		return RegisterResult{}, err
	}

	if result.AlreadyRegistered {
		metrics.RegistrationsTotal.WithLabelValues("already_registered").Inc()
	} else {
		metrics.RegistrationsTotal.WithLabelValues("registered").Inc()
	}
	return result, nil
}

// Unregister removes the student's registration. Removing a registration that
// does not exist is not an error; the call is idempotent.
func (s *RegistrationService) Unregister(ctx context.Context, studentID, eventID string) (bool, error) {
	if studentID == "" || eventID == "" {
		return false, domain.ErrInvalidID
	}
	removed, err := s.repo.DeleteRegistration(ctx, eventID, studentID)
	if err != nil {
		return false, err
	}
	if removed {
		metrics.RegistrationsTotal.WithLabelValues("unregistered").Inc()
	}
	return removed, nil
}

// EventView is one entry of a reconcile snapshot.
type EventView struct {
	domain.EventWithCount
	Registered bool
	Full       bool
}

// Snapshot is the authoritative state for one student's dashboard, rebuilt
// from a fresh full read. A later snapshot always replaces an earlier one.
type Snapshot struct {
	TakenAt time.Time
	Events  []EventView
}

// Reconcile re-fetches upcoming events, per-event counts and the student's
// registrations, replacing any locally derived state the caller holds.
func (s *RegistrationService) Reconcile(ctx context.Context, studentID string) (Snapshot, error) {
	if studentID == "" {
		return Snapshot{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	events, err := s.repo.ListUpcomingWithCounts(ctx, now)
	if err != nil {
		return Snapshot{}, err
	}
	registeredIDs, err := s.repo.ListEventIDsForStudent(ctx, studentID)
	if err != nil {
		return Snapshot{}, err
	}

	registered := make(map[string]struct{}, len(registeredIDs))
	for _, id := range registeredIDs {
		registered[id] = struct{}{}
	}

	views := make([]EventView, 0, len(events))
	for _, ev := range events {
		_, isRegistered := registered[ev.ID]
		views = append(views, EventView{
			EventWithCount: ev,
			Registered:     isRegistered,
			Full:           ev.Full(),
		})
	}

	metrics.ReconcilesTotal.Inc()
	return Snapshot{TakenAt: now, Events: views}, nil
}

// MyEvents lists the student's registrations with event summaries, newest
// registration first.
func (s *RegistrationService) MyEvents(ctx context.Context, studentID string) ([]domain.RegisteredEvent, error) {
	if studentID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListRegisteredEvents(ctx, studentID)
}

func registerOutcome(err error) string {
	switch err {
	case domain.ErrEventFull:
		return "full"
	case domain.ErrEventEnded:
		return "ended"
	case domain.ErrEventNotFound:
		return "not_found"
	default:
		return "error"
	}
}
