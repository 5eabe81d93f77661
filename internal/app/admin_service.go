package app

import (
	"context"
	"strings"
	"time"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/clock"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

type AdminRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) error
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	ListEventsWithCounts(ctx context.Context) ([]domain.EventWithCount, error)
	Stats(ctx context.Context) (Stats, error)
}

// Stats holds the admin dashboard totals.
type Stats struct {
	Events        int
	Students      int
	Registrations int
}

type AdminService struct {
	repo  AdminRepository
	clock clock.Clock
}

func NewAdminService(repo AdminRepository, clk clock.Clock) *AdminService {
	return &AdminService{
		repo:  repo,
		clock: clk,
	}
}

type EventInput struct {
	Title       string
	Description string
	Category    domain.Category
	Venue       string
	StartDate   time.Time
	EndDate     time.Time
	// MaxParticipants is nil for unlimited events.
	MaxParticipants *int
}

func (in EventInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ErrTitleRequired
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return domain.ErrDatesRequired
	}
	if in.StartDate.After(in.EndDate) {
		return domain.ErrInvalidDateRange
	}
	if in.Category != "" && !in.Category.Valid() {
		return domain.ErrInvalidCategory
	}
	if in.MaxParticipants != nil && *in.MaxParticipants <= 0 {
		return domain.ErrInvalidCapacity
	}
	return nil
}

func (in EventInput) category() domain.Category {
	if in.Category == "" {
		return domain.CategoryWorkshop
	}
	return in.Category
}

func (s *AdminService) CreateEvent(ctx context.Context, createdBy string, in EventInput) (domain.Event, error) {
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		ID:              newID(),
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Category:        in.category(),
		Venue:           in.Venue,
		StartDate:       in.StartDate.UTC(),
		EndDate:         in.EndDate.UTC(),
		MaxParticipants: in.MaxParticipants,
		CreatedBy:       createdBy,
		CreatedAt:       s.clock.Now(),
	}

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (s *AdminService) UpdateEvent(ctx context.Context, id string, in EventInput) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}
	if err := in.validate(); err != nil {
		return domain.Event{}, err
	}

	existing, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.Description = in.Description
	existing.Category = in.category()
	existing.Venue = in.Venue
	existing.StartDate = in.StartDate.UTC()
	existing.EndDate = in.EndDate.UTC()
	existing.MaxParticipants = in.MaxParticipants

	if err := s.repo.UpdateEvent(ctx, existing); err != nil {
		return domain.Event{}, err
	}
	return existing, nil
}

// DeleteEvent removes the event. Its registrations are removed with it by the
// schema-level cascade.
func (s *AdminService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteEvent(ctx, id)
}

func (s *AdminService) ListEvents(ctx context.Context) ([]domain.EventWithCount, error) {
	return s.repo.ListEventsWithCounts(ctx)
}

func (s *AdminService) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
