package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/app"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func (r *AdminRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, title, description, category, venue, start_date, end_date, max_participants, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, stmt,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.Venue,
		event.StartDate,
		event.EndDate,
		event.MaxParticipants,
		event.CreatedBy,
		event.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *AdminRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET title = $2, description = $3, category = $4, venue = $5,
	start_date = $6, end_date = $7, max_participants = $8
WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.Venue,
		event.StartDate,
		event.EndDate,
		event.MaxParticipants,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// DeleteEvent removes the event; its registrations cascade at the schema level.
func (r *AdminRepository) DeleteEvent(ctx context.Context, id string) error {
	const stmt = `DELETE FROM events WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *AdminRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	const query = `
SELECT id, title, description, category, venue, start_date, end_date, max_participants, created_by, created_at
FROM events
WHERE id = $1`
	var e domain.Event
	var createdBy *string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Venue,
		&e.StartDate, &e.EndDate, &e.MaxParticipants, &createdBy, &e.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	if createdBy != nil {
		e.CreatedBy = *createdBy
	}
	return e, nil
}

// ListEventsWithCounts returns all events with their registration counts,
// newest start date first (the admin list order).
func (r *AdminRepository) ListEventsWithCounts(ctx context.Context) ([]domain.EventWithCount, error) {
	const query = `
SELECT e.id, e.title, e.description, e.category, e.venue, e.start_date, e.end_date,
	e.max_participants, e.created_at, COUNT(reg.id)
FROM events e
LEFT JOIN registrations reg ON reg.event_id = e.id
GROUP BY e.id
ORDER BY e.start_date DESC, e.id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.EventWithCount
	for rows.Next() {
		var e domain.EventWithCount
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Category, &e.Venue,
			&e.StartDate, &e.EndDate, &e.MaxParticipants, &e.CreatedAt,
			&e.RegisteredCount,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

// Stats returns the dashboard totals in a single round trip.
func (r *AdminRepository) Stats(ctx context.Context) (app.Stats, error) {
	const query = `
SELECT
	(SELECT COUNT(*) FROM events),
	(SELECT COUNT(*) FROM profiles WHERE role = 'student'),
	(SELECT COUNT(*) FROM registrations)`
	var s app.Stats
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Events, &s.Students, &s.Registrations); err != nil {
		return app.Stats{}, fmt.Errorf("stats: %w", err)
	}
	return s, nil
}
