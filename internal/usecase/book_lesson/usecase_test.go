package book_lesson

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

// Моки репозиториев

type stubSlotRepo struct {
	slot       *domain.AvailabilitySlot
	getErr     error
	reserveOK  bool
	reserveErr error

	createdBatch []*domain.AvailabilitySlot
}

func (s *stubSlotRepo) GetByID(_ context.Context, _ int64) (*domain.AvailabilitySlot, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.slot, nil
}

func (s *stubSlotRepo) TryReserve(_ context.Context, _ int64) (bool, error) {
	return s.reserveOK, s.reserveErr
}

func (s *stubSlotRepo) CreateBatch(_ context.Context, slots []*domain.AvailabilitySlot) error {
	s.createdBatch = slots
	return nil
}

type stubLessonRepo struct {
	existing []*domain.DrivingLesson
	created  *domain.DrivingLesson
}

func (s *stubLessonRepo) Create(_ context.Context, lesson *domain.DrivingLesson) (*domain.DrivingLesson, error) {
	created := *lesson
	created.ID = 100
	s.created = &created
	return &created, nil
}

func (s *stubLessonRepo) GetActiveByStudentAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.DrivingLesson, error) {
	return s.existing, nil
}

type stubBalanceRepo struct {
	debitOK      bool
	minutesAfter int

	debitedMinutes int
}

func (s *stubBalanceRepo) TryDebit(_ context.Context, _ int64, minutes int) (bool, error) {
	if s.debitOK {
		s.debitedMinutes = minutes
	}
	return s.debitOK, nil
}

func (s *stubBalanceRepo) GetMinutes(_ context.Context, _ int64) (int, error) {
	return s.minutesAfter, nil
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

type stubTxManager struct{}

func (s *stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

// Общая обвязка

type fixture struct {
	slots       *stubSlotRepo
	lessons     *stubLessonRepo
	balance     *stubBalanceRepo
	assignments *stubAssignmentRepo
	settings    *stubSettingsRepo
	uc          *UseCase
}

func lessonDate() time.Time {
	return time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
}

func newFixture() *fixture {
	slotDate := lessonDate()
	f := &fixture{
		slots: &stubSlotRepo{
			slot: &domain.AvailabilitySlot{
				ID:           10,
				InstructorID: 7,
				SlotDate:     &slotDate,
				StartTime:    "09:00",
				EndTime:      "12:00",
				LicenseTypes: []string{"B"},
			},
			reserveOK: true,
		},
		lessons: &stubLessonRepo{},
		balance: &stubBalanceRepo{debitOK: true, minutesAfter: 60},
		assignments: &stubAssignmentRepo{
			assignment: &domain.InstructorAssignment{
				ID:           1,
				StudentID:    5,
				InstructorID: 7,
				CourseType:   "B",
				IsActive:     true,
			},
		},
		settings: &stubSettingsRepo{hours: 24},
	}

	f.uc = NewUseCase(f.slots, f.lessons, f.balance, f.assignments, f.settings, &stubTxManager{}, 24, &nopLogger{})
	// Фиксируем время за двое суток до занятия
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC)}

	return f
}

func validRequest() *Request {
	return &Request{
		StudentID:      5,
		CourseType:     "B",
		AvailabilityID: 10,
		Date:           lessonDate(),
		StartTime:      "11:00",
		EndTime:        "12:00",
		DurationHours:  1,
	}
}

// Тесты

func TestExecute_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, int64(5), resp.StudentID)
	assert.Equal(t, int64(7), resp.InstructorID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.True(t, resp.StudentConfirmed)
	assert.False(t, resp.InstructorConfirmed)
	assert.Equal(t, 60, resp.BalanceMinutes)

	// Списано ровно 60 минут за часовое занятие
	assert.Equal(t, 60, f.balance.debitedMinutes)

	// Незанятая часть слота 09:00-11:00 стала остаточным слотом
	require.Len(t, f.slots.createdBatch, 1)
	assert.Equal(t, types.TimeString("09:00"), f.slots.createdBatch[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), f.slots.createdBatch[0].EndTime)
	assert.False(t, f.slots.createdBatch[0].IsBooked)
}

func TestExecute_FullSlot_NoResiduals(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "09:00"
	req.EndTime = "12:00"
	req.DurationHours = 3

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, f.slots.createdBatch)
}

func TestExecute_NoActiveAssignment(t *testing.T) {
	f := newFixture()
	f.assignments.err = assignmentRepo.ErrAssignmentNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoActiveAssignment)
}

func TestExecute_TooLateToBook(t *testing.T) {
	f := newFixture()
	// Меньше суток до начала занятия
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_SettingsFallback(t *testing.T) {
	f := newFixture()
	f.settings.err = settingsRepo.ErrSettingsNotFound

	// Запасное значение 24 часа из конфигурации все равно применяется
	f.uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_SlotNotFound(t *testing.T) {
	f := newFixture()
	f.slots.getErr = slotRepo.ErrSlotNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotAlreadyBooked_Flag(t *testing.T) {
	f := newFixture()
	f.slots.slot.IsBooked = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestExecute_SlotAlreadyBooked_ReserveRace(t *testing.T) {
	f := newFixture()
	f.slots.reserveOK = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
}

func TestExecute_WrongInstructor(t *testing.T) {
	f := newFixture()
	f.slots.slot.InstructorID = 99

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrWrongInstructor)
}

func TestExecute_LicenseMismatch(t *testing.T) {
	f := newFixture()
	f.slots.slot.LicenseTypes = []string{"C"}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrLicenseMismatch)
}

func TestExecute_LessonOutsideSlot(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "11:30"
	req.EndTime = "12:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrLessonOutsideSlot)
}

func TestExecute_SlotNotDated(t *testing.T) {
	f := newFixture()
	f.slots.slot.SlotDate = nil
	f.slots.slot.IsRecurring = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotDated)
}

func TestExecute_OverlappingLesson(t *testing.T) {
	f := newFixture()
	f.lessons.existing = []*domain.DrivingLesson{
		{
			LessonDate: lessonDate(),
			StartTime:  "10:30",
			EndTime:    "11:30",
			Status:     domain.StatusConfirmed,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOverlappingLesson)
}

func TestExecute_BoundaryTouchLesson_IsAllowed(t *testing.T) {
	f := newFixture()
	f.lessons.existing = []*domain.DrivingLesson{
		{
			LessonDate: lessonDate(),
			StartTime:  "10:00",
			EndTime:    "11:00",
			Status:     domain.StatusConfirmed,
		},
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_InsufficientBalance(t *testing.T) {
	f := newFixture()
	f.balance.debitOK = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero student", func(r *Request) { r.StudentID = 0 }},
		{"empty course type", func(r *Request) { r.CourseType = "" }},
		{"zero slot", func(r *Request) { r.AvailabilityID = 0 }},
		{"start after end", func(r *Request) { r.StartTime = "12:00"; r.EndTime = "11:00" }},
		{"duration mismatch", func(r *Request) { r.DurationHours = 2 }},
		{"duration too long", func(r *Request) { r.DurationHours = 5 }},
		{"bad time format", func(r *Request) { r.StartTime = "9:00" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
