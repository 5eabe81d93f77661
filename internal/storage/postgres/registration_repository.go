package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

func (r *RegistrationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RegistrationRepository) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `
SELECT id, title, description, category, venue, start_date, end_date, max_participants, created_at
FROM events
WHERE id = $1
FOR UPDATE`
	var e domain.Event
	err := r.queryRow(ctx, query, eventID).Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Venue,
		&e.StartDate, &e.EndDate, &e.MaxParticipants, &e.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event for update: %w", err)
	}
	return e, nil
}

func (r *RegistrationRepository) CountForEvent(ctx context.Context, eventID string) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE event_id = $1`
	var total int
	if err := r.queryRow(ctx, query, eventID).Scan(&total); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return total, nil
}

func (r *RegistrationRepository) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	const stmt = `
INSERT INTO registrations (id, event_id, student_id, registered_at)
VALUES ($1, $2, $3, $4)`
	_, err := r.exec(ctx, stmt, reg.ID, reg.EventID, reg.StudentID, reg.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// DeleteRegistration removes the (event, student) registration and reports
// whether a row existed.
func (r *RegistrationRepository) DeleteRegistration(ctx context.Context, eventID, studentID string) (bool, error) {
	const stmt = `DELETE FROM registrations WHERE event_id = $1 AND student_id = $2`
	tag, err := r.exec(ctx, stmt, eventID, studentID)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("delete registration: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListUpcomingWithCounts returns events that have not ended yet, with their
// registration counts, ordered by start date.
func (r *RegistrationRepository) ListUpcomingWithCounts(ctx context.Context, now time.Time) ([]domain.EventWithCount, error) {
	const query = `
SELECT e.id, e.title, e.description, e.category, e.venue, e.start_date, e.end_date,
	e.max_participants, e.created_at, COUNT(reg.id)
FROM events e
LEFT JOIN registrations reg ON reg.event_id = e.id
WHERE e.end_date >= $1
GROUP BY e.id
ORDER BY e.start_date ASC, e.id ASC`
	rows, err := r.query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
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

// ListEventIDsForStudent returns the ids of every event the student is
// registered for.
func (r *RegistrationRepository) ListEventIDsForStudent(ctx context.Context, studentID string) ([]string, error) {
	const query = `SELECT event_id FROM registrations WHERE student_id = $1`
	rows, err := r.query(ctx, query, studentID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list student registrations: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		ids = append(ids, id)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate registrations: %w", rows.Err())
	}
	return ids, nil
}

// ListRegisteredEvents returns the student's registrations joined with their
// events, newest registration first.
func (r *RegistrationRepository) ListRegisteredEvents(ctx context.Context, studentID string) ([]domain.RegisteredEvent, error) {
	const query = `
SELECT reg.id, reg.registered_at,
	e.id, e.title, e.description, e.category, e.venue, e.start_date, e.end_date,
	e.max_participants, e.created_at
FROM registrations reg
JOIN events e ON e.id = reg.event_id
WHERE reg.student_id = $1
ORDER BY reg.registered_at DESC, reg.id ASC`
	return r.scanRegisteredEvents(ctx, query, studentID)
}

func (r *RegistrationRepository) scanRegisteredEvents(ctx context.Context, query string, args ...any) ([]domain.RegisteredEvent, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list registered events: %w", err)
	}
	defer rows.Close()

	var out []domain.RegisteredEvent
	for rows.Next() {
		var re domain.RegisteredEvent
		if err := rows.Scan(
			&re.RegistrationID, &re.RegisteredAt,
			&re.Event.ID, &re.Event.Title, &re.Event.Description, &re.Event.Category,
			&re.Event.Venue, &re.Event.StartDate, &re.Event.EndDate,
			&re.Event.MaxParticipants, &re.Event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan registered event: %w", err)
		}
		out = append(out, re)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate registered events: %w", rows.Err())
	}
	return out, nil
}

func (r *RegistrationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *RegistrationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

func (r *RegistrationRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}
