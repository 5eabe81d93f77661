package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

type DirectoryRepository struct {
	pool *pgxpool.Pool
}

func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

// ListStudents returns every student profile ordered by name.
func (r *DirectoryRepository) ListStudents(ctx context.Context) ([]domain.Profile, error) {
	const query = `
SELECT id, full_name, email, role
FROM profiles
WHERE role = 'student'
ORDER BY full_name ASC, id ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Role); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate students: %w", rows.Err())
	}
	return students, nil
}

// StudentExists reports whether a student profile with the id exists.
func (r *DirectoryRepository) StudentExists(ctx context.Context, studentID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM profiles WHERE id = $1 AND role = 'student')`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, studentID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("check student: %w", err)
	}
	return exists, nil
}

// ListStudentRegistrations returns the student's registrations joined with
// event summaries, ordered by event start time.
func (r *DirectoryRepository) ListStudentRegistrations(ctx context.Context, studentID string) ([]domain.RegisteredEvent, error) {
	const query = `
SELECT reg.id, reg.registered_at,
	e.id, e.title, e.description, e.category, e.venue, e.start_date, e.end_date,
	e.max_participants, e.created_at
FROM registrations reg
JOIN events e ON e.id = reg.event_id
WHERE reg.student_id = $1
ORDER BY e.start_date ASC, e.id ASC`
	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list student registrations: %w", err)
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
			return nil, fmt.Errorf("scan student registration: %w", err)
		}
		out = append(out, re)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate student registrations: %w", rows.Err())
	}
	return out, nil
}
