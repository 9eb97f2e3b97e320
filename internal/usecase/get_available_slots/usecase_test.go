package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	assignmentRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/assignment"
	settingsRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

type stubSlotRepo struct {
	slots      []*domain.AvailabilitySlot
	lastFilter slotRepo.Filter
}

func (s *stubSlotRepo) List(_ context.Context, filter slotRepo.Filter) ([]*domain.AvailabilitySlot, error) {
	s.lastFilter = filter
	return s.slots, nil
}

type stubAssignmentRepo struct {
	assignment *domain.InstructorAssignment
	err        error
}

func (s *stubAssignmentRepo) GetActive(_ context.Context, _ int64, _ string) (*domain.InstructorAssignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assignment, nil
}

type stubSettingsRepo struct {
	hours int
	err   error
}

func (s *stubSettingsRepo) GetMinAdvanceHours(_ context.Context) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.hours, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func datedSlot(id int64, date time.Time, start, end string) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:           id,
		InstructorID: 7,
		SlotDate:     &date,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		LicenseTypes: []string{"B"},
	}
}

func newUseCaseForTest(slots *stubSlotRepo, assignments *stubAssignmentRepo, settings *stubSettingsRepo, now time.Time) *UseCase {
	uc := NewUseCase(slots, assignments, settings, 24, 30, &nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_ReturnsSlotsPassingAdvanceRule(t *testing.T) {
	now := time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	dayAfter := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	slots := &stubSlotRepo{slots: []*domain.AvailabilitySlot{
		// Начало раньше чем через 24 часа, слот отфильтруется
		datedSlot(1, tomorrow, "09:00", "11:00"),
		datedSlot(2, dayAfter, "09:00", "11:00"),
		datedSlot(3, dayAfter, "14:00", "16:00"),
	}}
	assignments := &stubAssignmentRepo{assignment: &domain.InstructorAssignment{
		StudentID:    5,
		InstructorID: 7,
		CourseType:   "B",
		IsActive:     true,
	}}
	settings := &stubSettingsRepo{hours: 24}

	uc := newUseCaseForTest(slots, assignments, settings, now)

	resp, err := uc.Execute(context.Background(), &Request{StudentID: 5, CourseType: "B"})
	require.NoError(t, err)

	assert.Equal(t, int64(7), resp.InstructorID)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, int64(2), resp.Slots[0].ID)
	assert.Equal(t, int64(3), resp.Slots[1].ID)
}

func TestExecute_FilterPassedToRepository(t *testing.T) {
	now := time.Date(2026, 10, 13, 10, 30, 0, 0, time.UTC)

	slots := &stubSlotRepo{}
	assignments := &stubAssignmentRepo{assignment: &domain.InstructorAssignment{
		StudentID:    5,
		InstructorID: 7,
		CourseType:   "B",
		IsActive:     true,
	}}
	settings := &stubSettingsRepo{hours: 24}

	uc := newUseCaseForTest(slots, assignments, settings, now)

	_, err := uc.Execute(context.Background(), &Request{StudentID: 5, CourseType: "B"})
	require.NoError(t, err)

	f := slots.lastFilter
	require.NotNil(t, f.InstructorID)
	assert.Equal(t, int64(7), *f.InstructorID)
	require.NotNil(t, f.LicenseType)
	assert.Equal(t, "B", *f.LicenseType)
	assert.True(t, f.OnlyUnbooked)
	assert.True(t, f.OnlyDated)
	require.NotNil(t, f.DateFrom)
	assert.Equal(t, time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC), *f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.Date(2026, 11, 12, 0, 0, 0, 0, time.UTC), *f.DateTo)
}

func TestExecute_NoActiveAssignment(t *testing.T) {
	uc := newUseCaseForTest(
		&stubSlotRepo{},
		&stubAssignmentRepo{err: assignmentRepo.ErrAssignmentNotFound},
		&stubSettingsRepo{hours: 24},
		time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC),
	)

	_, err := uc.Execute(context.Background(), &Request{StudentID: 5, CourseType: "B"})
	assert.ErrorIs(t, err, ErrNoActiveAssignment)
}

func TestExecute_SettingsFallbackApplied(t *testing.T) {
	now := time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	slots := &stubSlotRepo{slots: []*domain.AvailabilitySlot{
		datedSlot(1, tomorrow, "09:00", "11:00"),
	}}
	uc := newUseCaseForTest(
		slots,
		&stubAssignmentRepo{assignment: &domain.InstructorAssignment{StudentID: 5, InstructorID: 7, CourseType: "B", IsActive: true}},
		&stubSettingsRepo{err: settingsRepo.ErrSettingsNotFound},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{StudentID: 5, CourseType: "B"})
	require.NoError(t, err)

	// Запасные 24 часа из конфигурации отфильтровали завтрашний утренний слот
	assert.Empty(t, resp.Slots)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCaseForTest(
		&stubSlotRepo{},
		&stubAssignmentRepo{},
		&stubSettingsRepo{hours: 24},
		time.Now(),
	)

	_, err := uc.Execute(context.Background(), &Request{StudentID: 0, CourseType: "B"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{StudentID: 5, CourseType: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
