package lessons

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	lessonRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/lesson"
	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons/models"
	"github.com/m04kA/ADS-SchedulingService/pkg/ptr"
)

// Моки репозиториев

type stubLessonRepo struct {
	lesson *domain.DrivingLesson
	getErr error

	cancelCalled      bool
	cancelCancelledBy string
	cancelDeducted    bool

	confirmCalled      bool
	confirmStatus      domain.LessonStatus
	confirmConfirmedAt *time.Time

	completeCalled bool
	completeNotes  *string

	byStudent []*domain.DrivingLesson
}

func (s *stubLessonRepo) GetByID(_ context.Context, _ int64) (*domain.DrivingLesson, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.lesson, nil
}

func (s *stubLessonRepo) GetByStudent(_ context.Context, _ int64, _ *domain.LessonStatus) ([]*domain.DrivingLesson, error) {
	return s.byStudent, nil
}

func (s *stubLessonRepo) SetInstructorConfirmed(_ context.Context, _ int64, status domain.LessonStatus, confirmedAt *time.Time) error {
	s.confirmCalled = true
	s.confirmStatus = status
	s.confirmConfirmedAt = confirmedAt
	return nil
}

func (s *stubLessonRepo) Cancel(_ context.Context, _ int64, cancelledBy string, _ *string, isDeducted bool) error {
	s.cancelCalled = true
	s.cancelCancelledBy = cancelledBy
	s.cancelDeducted = isDeducted
	return nil
}

func (s *stubLessonRepo) Complete(_ context.Context, _ int64, recapNotes *string) error {
	s.completeCalled = true
	s.completeNotes = recapNotes
	return nil
}

type stubSlotRepo struct {
	releasedID int64
	released   bool
	err        error
}

func (s *stubSlotRepo) Release(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.released = true
	s.releasedID = id
	return nil
}

type stubBalanceRepo struct {
	credited        bool
	creditedMinutes int
}

func (s *stubBalanceRepo) Credit(_ context.Context, _ int64, minutes int) error {
	s.credited = true
	s.creditedMinutes = minutes
	return nil
}

type stubTxManager struct{}

func (s *stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

const (
	testStudentID    = int64(5)
	testInstructorID = int64(7)
	testLessonID     = int64(50)
)

type fixture struct {
	lessons *stubLessonRepo
	slots   *stubSlotRepo
	balance *stubBalanceRepo
	svc     *Service
}

func pendingLesson() *domain.DrivingLesson {
	return &domain.DrivingLesson{
		ID:               testLessonID,
		StudentID:        testStudentID,
		InstructorID:     testInstructorID,
		AvailabilityID:   ptr.Ptr(int64(10)),
		LessonDate:       time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:        "11:00",
		EndTime:          "12:00",
		DurationHours:    1,
		Status:           domain.StatusPending,
		StudentConfirmed: true,
	}
}

// newFixture создает сервис с порогом поздней отмены 48 часов
// и текущим временем за 4 дня до занятия
func newFixture(lesson *domain.DrivingLesson) *fixture {
	f := &fixture{
		lessons: &stubLessonRepo{lesson: lesson},
		slots:   &stubSlotRepo{},
		balance: &stubBalanceRepo{},
	}

	f.svc = NewService(f.lessons, f.slots, f.balance, &stubTxManager{}, 48, &nopLogger{})
	f.svc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 10, 11, 10, 0, 0, 0, time.UTC)}

	return f
}

func (f *fixture) setNow(now time.Time) {
	f.svc.timeProvider = &fixedTimeProvider{now: now}
}

// Тесты GetByID

func TestGetByID_StudentAccess(t *testing.T) {
	f := newFixture(pendingLesson())

	resp, err := f.svc.GetByID(context.Background(), testLessonID, testStudentID)
	require.NoError(t, err)
	assert.Equal(t, testLessonID, resp.ID)
}

func TestGetByID_InstructorAccess(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.GetByID(context.Background(), testLessonID, testInstructorID)
	assert.NoError(t, err)
}

func TestGetByID_AccessDenied(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.GetByID(context.Background(), testLessonID, int64(999))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(nil)
	f.lessons.getErr = lessonRepo.ErrLessonNotFound

	_, err := f.svc.GetByID(context.Background(), testLessonID, testStudentID)
	assert.ErrorIs(t, err, ErrLessonNotFound)
}

// Тесты GetStudentLessons

func TestGetStudentLessons_AccessDenied(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.GetStudentLessons(context.Background(), &models.GetStudentLessonsRequest{
		StudentID: testStudentID,
		UserID:    int64(999),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetStudentLessons_InvalidStatus(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.GetStudentLessons(context.Background(), &models.GetStudentLessonsRequest{
		StudentID: testStudentID,
		UserID:    testStudentID,
		Status:    ptr.Ptr("unknown"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetStudentLessons_ReturnsTotal(t *testing.T) {
	f := newFixture(pendingLesson())
	f.lessons.byStudent = []*domain.DrivingLesson{pendingLesson(), pendingLesson()}

	resp, err := f.svc.GetStudentLessons(context.Background(), &models.GetStudentLessonsRequest{
		StudentID: testStudentID,
		UserID:    testStudentID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Lessons, 2)
}

// Тесты Cancel

func TestCancel_Early_RefundsBalance(t *testing.T) {
	f := newFixture(pendingLesson())

	result, err := f.svc.Cancel(context.Background(), testLessonID, &models.CancelLessonRequest{
		UserID: testStudentID,
		Reason: ptr.Ptr("планы изменились"),
	})
	require.NoError(t, err)

	assert.False(t, result.HourDeducted)
	assert.Equal(t, string(domain.StatusCancelled), result.Lesson.Status)

	assert.True(t, f.lessons.cancelCalled)
	assert.Equal(t, domain.CancelledByStudent, f.lessons.cancelCancelledBy)
	assert.False(t, f.lessons.cancelDeducted)

	assert.True(t, f.balance.credited)
	assert.Equal(t, 60, f.balance.creditedMinutes)

	assert.True(t, f.slots.released)
	assert.Equal(t, int64(10), f.slots.releasedID)
}

func TestCancel_Late_DeductsHour(t *testing.T) {
	f := newFixture(pendingLesson())
	// Меньше 48 часов до начала занятия
	f.setNow(time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC))

	result, err := f.svc.Cancel(context.Background(), testLessonID, &models.CancelLessonRequest{
		UserID: testStudentID,
	})
	require.NoError(t, err)

	assert.True(t, result.HourDeducted)
	assert.True(t, f.lessons.cancelDeducted)
	assert.False(t, f.balance.credited)
	assert.True(t, f.slots.released)
}

func TestCancel_LateButUrgent_RefundsBalance(t *testing.T) {
	f := newFixture(pendingLesson())
	f.setNow(time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC))

	result, err := f.svc.Cancel(context.Background(), testLessonID, &models.CancelLessonRequest{
		UserID:   testStudentID,
		IsUrgent: true,
	})
	require.NoError(t, err)

	assert.False(t, result.HourDeducted)
	assert.True(t, f.balance.credited)
}

func TestCancel_LateButPreApproved_RefundsBalance(t *testing.T) {
	f := newFixture(pendingLesson())
	f.setNow(time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC))

	result, err := f.svc.Cancel(context.Background(), testLessonID, &models.CancelLessonRequest{
		UserID:        testStudentID,
		IsPreApproved: true,
	})
	require.NoError(t, err)

	assert.False(t, result.HourDeducted)
	assert.True(t, f.balance.credited)
}

func TestCancel_AccessDenied(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.Cancel(context.Background(), testLessonID, &models.CancelLessonRequest{
		UserID: testInstructorID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	lesson := pendingLesson()
	lesson.Status = domain.StatusCancelled
	f := newFixture(lesson)

	_, err := f.svc.Cancel(context.Background(), testLessonID, &models.CancelLessonRequest{
		UserID: testStudentID,
	})
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancel_AlreadyCompleted(t *testing.T) {
	lesson := pendingLesson()
	lesson.Status = domain.StatusCompleted
	f := newFixture(lesson)

	_, err := f.svc.Cancel(context.Background(), testLessonID, &models.CancelLessonRequest{
		UserID: testStudentID,
	})
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.Cancel(context.Background(), testLessonID, &models.CancelLessonRequest{
		UserID: testStudentID,
		Reason: ptr.Ptr(strings.Repeat("a", domain.MaxCancellationReasonLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Тесты Confirm

func TestConfirm_BothPartiesConfirmed(t *testing.T) {
	f := newFixture(pendingLesson())

	resp, err := f.svc.Confirm(context.Background(), testLessonID, testInstructorID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.True(t, resp.InstructorConfirmed)

	assert.True(t, f.lessons.confirmCalled)
	assert.Equal(t, domain.StatusConfirmed, f.lessons.confirmStatus)
	assert.NotNil(t, f.lessons.confirmConfirmedAt)
}

func TestConfirm_StudentNotConfirmed_StaysPending(t *testing.T) {
	lesson := pendingLesson()
	lesson.StudentConfirmed = false
	f := newFixture(lesson)

	resp, err := f.svc.Confirm(context.Background(), testLessonID, testInstructorID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.True(t, resp.InstructorConfirmed)
	assert.Equal(t, domain.StatusPending, f.lessons.confirmStatus)
	assert.Nil(t, f.lessons.confirmConfirmedAt)
}

func TestConfirm_AlreadyConfirmed(t *testing.T) {
	lesson := pendingLesson()
	lesson.Status = domain.StatusConfirmed
	lesson.InstructorConfirmed = true
	f := newFixture(lesson)

	_, err := f.svc.Confirm(context.Background(), testLessonID, testInstructorID)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

func TestConfirm_AccessDenied(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.Confirm(context.Background(), testLessonID, int64(999))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestConfirm_CancelledLesson(t *testing.T) {
	lesson := pendingLesson()
	lesson.Status = domain.StatusCancelled
	f := newFixture(lesson)

	_, err := f.svc.Confirm(context.Background(), testLessonID, testInstructorID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

// Тесты Reject

func TestReject_RefundsAndReleasesSlot(t *testing.T) {
	f := newFixture(pendingLesson())

	resp, err := f.svc.Reject(context.Background(), testLessonID, &models.RejectLessonRequest{
		InstructorID: testInstructorID,
		Reason:       ptr.Ptr("болезнь инструктора"),
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	assert.True(t, f.lessons.cancelCalled)
	assert.Equal(t, domain.CancelledByInstructor, f.lessons.cancelCancelledBy)
	assert.False(t, f.lessons.cancelDeducted)

	// Отказ инструктора всегда возвращает баланс студенту
	assert.True(t, f.balance.credited)
	assert.Equal(t, 60, f.balance.creditedMinutes)
	assert.True(t, f.slots.released)
}

func TestReject_NotPending(t *testing.T) {
	lesson := pendingLesson()
	lesson.Status = domain.StatusConfirmed
	lesson.InstructorConfirmed = true
	f := newFixture(lesson)

	_, err := f.svc.Reject(context.Background(), testLessonID, &models.RejectLessonRequest{
		InstructorID: testInstructorID,
	})
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestReject_AccessDenied(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.Reject(context.Background(), testLessonID, &models.RejectLessonRequest{
		InstructorID: int64(999),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

// Тесты Complete

func TestComplete_ConfirmedLesson(t *testing.T) {
	lesson := pendingLesson()
	lesson.Status = domain.StatusConfirmed
	lesson.InstructorConfirmed = true
	f := newFixture(lesson)

	notes := ptr.Ptr("отработали параллельную парковку")
	resp, err := f.svc.Complete(context.Background(), testLessonID, &models.CompleteLessonRequest{
		InstructorID: testInstructorID,
		RecapNotes:   notes,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.True(t, f.lessons.completeCalled)
	assert.Equal(t, notes, f.lessons.completeNotes)

	// Час был списан при бронировании, баланс не трогаем
	assert.False(t, f.balance.credited)
}

func TestComplete_NotConfirmed(t *testing.T) {
	f := newFixture(pendingLesson())

	_, err := f.svc.Complete(context.Background(), testLessonID, &models.CompleteLessonRequest{
		InstructorID: testInstructorID,
	})
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestComplete_AccessDenied(t *testing.T) {
	lesson := pendingLesson()
	lesson.Status = domain.StatusConfirmed
	f := newFixture(lesson)

	_, err := f.svc.Complete(context.Background(), testLessonID, &models.CompleteLessonRequest{
		InstructorID: int64(999),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestComplete_RecapNotesTooLong(t *testing.T) {
	lesson := pendingLesson()
	lesson.Status = domain.StatusConfirmed
	f := newFixture(lesson)

	_, err := f.svc.Complete(context.Background(), testLessonID, &models.CompleteLessonRequest{
		InstructorID: testInstructorID,
		RecapNotes:   ptr.Ptr(strings.Repeat("a", domain.MaxRecapNotesLength+1)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
