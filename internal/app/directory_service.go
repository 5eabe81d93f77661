package app

import (
	"context"

	"github.com/jananirjanani09-cyber/campus-event-hub-85/internal/domain"
)

type DirectoryRepository interface {
	ListStudents(ctx context.Context) ([]domain.Profile, error)
	StudentExists(ctx context.Context, studentID string) (bool, error)
	ListStudentRegistrations(ctx context.Context, studentID string) ([]domain.RegisteredEvent, error)
}

// DirectoryService is the read-only admin view over student profiles and
// their registrations.
type DirectoryService struct {
	repo DirectoryRepository
}

func NewDirectoryService(repo DirectoryRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) ListStudents(ctx context.Context) ([]domain.Profile, error) {
	return s.repo.ListStudents(ctx)
}

// StudentRegistrations returns the student's registrations ordered by event
// start time.
func (s *DirectoryService) StudentRegistrations(ctx context.Context, studentID string) ([]domain.RegisteredEvent, error) {
	if studentID == "" {
		return nil, domain.ErrInvalidID
	}
	exists, err := s.repo.StudentExists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrProfileNotFound
	}
	return s.repo.ListStudentRegistrations(ctx, studentID)
}
