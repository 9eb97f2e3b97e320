package assignments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	assignmentRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/assignment"
	"github.com/m04kA/ADS-SchedulingService/internal/service/assignments/models"
	"github.com/m04kA/ADS-SchedulingService/pkg/ptr"
)

type stubAssignmentRepo struct {
	active *domain.InstructorAssignment
	getErr error

	deactivateRows int64
	deactivated    bool

	created *domain.InstructorAssignment
}

func (s *stubAssignmentRepo) GetActive(_ context.Context, _ int64, _ string) (*domain.InstructorAssignment, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.active, nil
}

func (s *stubAssignmentRepo) Deactivate(_ context.Context, _ int64, _ int64, _ string) (int64, error) {
	s.deactivated = true
	return s.deactivateRows, nil
}

func (s *stubAssignmentRepo) CreateActive(_ context.Context, studentID, instructorID int64, courseType string, reason *string) (*domain.InstructorAssignment, error) {
	s.created = &domain.InstructorAssignment{
		ID:           2,
		StudentID:    studentID,
		InstructorID: instructorID,
		CourseType:   courseType,
		IsActive:     true,
		Reason:       reason,
	}
	return s.created, nil
}

type stubTxManager struct{}

func (s *stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func activeAssignment() *domain.InstructorAssignment {
	return &domain.InstructorAssignment{
		ID:           1,
		StudentID:    5,
		InstructorID: 7,
		CourseType:   "B",
		IsActive:     true,
	}
}

func newService(repo *stubAssignmentRepo) *Service {
	return NewService(repo, &stubTxManager{}, &nopLogger{})
}

func TestGetStudentInstructor_Success(t *testing.T) {
	svc := newService(&stubAssignmentRepo{active: activeAssignment()})

	resp, err := svc.GetStudentInstructor(context.Background(), &models.GetAssignmentRequest{
		StudentID:  5,
		UserID:     5,
		CourseType: "B",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.InstructorID)
	assert.True(t, resp.IsActive)
}

func TestGetStudentInstructor_AccessDenied(t *testing.T) {
	svc := newService(&stubAssignmentRepo{active: activeAssignment()})

	_, err := svc.GetStudentInstructor(context.Background(), &models.GetAssignmentRequest{
		StudentID:  5,
		UserID:     99,
		CourseType: "B",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetStudentInstructor_NotFound(t *testing.T) {
	svc := newService(&stubAssignmentRepo{getErr: assignmentRepo.ErrAssignmentNotFound})

	_, err := svc.GetStudentInstructor(context.Background(), &models.GetAssignmentRequest{
		StudentID:  5,
		UserID:     5,
		CourseType: "B",
	})
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestGetStudentInstructor_UnknownCourseType(t *testing.T) {
	svc := newService(&stubAssignmentRepo{active: activeAssignment()})

	_, err := svc.GetStudentInstructor(context.Background(), &models.GetAssignmentRequest{
		StudentID:  5,
		UserID:     5,
		CourseType: "Z",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChangeInstructor_Success(t *testing.T) {
	repo := &stubAssignmentRepo{active: activeAssignment(), deactivateRows: 1}
	svc := newService(repo)

	resp, err := svc.ChangeInstructor(context.Background(), &models.ChangeInstructorRequest{
		StudentID:       5,
		UserID:          5,
		NewInstructorID: 8,
		CourseType:      "B",
		Reason:          ptr.Ptr("переезд в другой район"),
	})
	require.NoError(t, err)

	assert.True(t, repo.deactivated)
	assert.Equal(t, int64(8), resp.InstructorID)
	assert.True(t, resp.IsActive)
}

func TestChangeInstructor_SameInstructor(t *testing.T) {
	svc := newService(&stubAssignmentRepo{active: activeAssignment(), deactivateRows: 1})

	_, err := svc.ChangeInstructor(context.Background(), &models.ChangeInstructorRequest{
		StudentID:       5,
		UserID:          5,
		NewInstructorID: 7,
		CourseType:      "B",
	})
	assert.ErrorIs(t, err, ErrSameInstructor)
}

func TestChangeInstructor_ConcurrentChange(t *testing.T) {
	// Deactivate не затронул строк: закрепление сменили конкурентно
	svc := newService(&stubAssignmentRepo{active: activeAssignment(), deactivateRows: 0})

	_, err := svc.ChangeInstructor(context.Background(), &models.ChangeInstructorRequest{
		StudentID:       5,
		UserID:          5,
		NewInstructorID: 8,
		CourseType:      "B",
	})
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestChangeInstructor_InvalidInstructorID(t *testing.T) {
	svc := newService(&stubAssignmentRepo{active: activeAssignment()})

	_, err := svc.ChangeInstructor(context.Background(), &models.ChangeInstructorRequest{
		StudentID:       5,
		UserID:          5,
		NewInstructorID: 0,
		CourseType:      "B",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
