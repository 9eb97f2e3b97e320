package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	slotRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/ADS-SchedulingService/internal/service/slots/models"
	"github.com/m04kA/ADS-SchedulingService/pkg/ptr"
	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

type stubSlotRepo struct {
	slot       *domain.AvailabilitySlot
	getErr     error
	listResult []*domain.AvailabilitySlot
	lastFilter slotRepo.Filter

	created *domain.AvailabilitySlot
	deleted bool
}

func (s *stubSlotRepo) Create(_ context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	created := *slot
	created.ID = 10
	s.created = &created
	return &created, nil
}

func (s *stubSlotRepo) GetByID(_ context.Context, _ int64) (*domain.AvailabilitySlot, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.slot, nil
}

func (s *stubSlotRepo) List(_ context.Context, filter slotRepo.Filter) ([]*domain.AvailabilitySlot, error) {
	s.lastFilter = filter
	return s.listResult, nil
}

func (s *stubSlotRepo) Delete(_ context.Context, _ int64) error {
	s.deleted = true
	return nil
}

type stubLessonRepo struct {
	activeCount int
}

func (s *stubLessonRepo) CountActiveByAvailability(_ context.Context, _ int64) (int, error) {
	return s.activeCount, nil
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

type fixture struct {
	slots   *stubSlotRepo
	lessons *stubLessonRepo
	svc     *Service
}

func newFixture() *fixture {
	f := &fixture{
		slots:   &stubSlotRepo{},
		lessons: &stubLessonRepo{},
	}
	f.svc = NewService(f.slots, f.lessons, &stubTxManager{}, &nopLogger{})
	f.svc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 10, 13, 10, 0, 0, 0, time.UTC)}
	return f
}

func oneOffRequest() *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		InstructorID: 7,
		Date:         ptr.Ptr("2026-10-20"),
		StartTime:    "09:00",
		EndTime:      "12:00",
		LicenseTypes: []string{"B"},
	}
}

func recurringRequest() *models.CreateSlotRequest {
	return &models.CreateSlotRequest{
		InstructorID:      7,
		StartTime:         "09:00",
		EndTime:           "12:00",
		LicenseTypes:      []string{"B"},
		IsRecurring:       true,
		RecurrencePattern: ptr.Ptr(string(domain.RecurrenceWeekly)),
		DaysOfWeek:        []int64{1, 3, 5},
	}
}

// Тесты CreateSlot

func TestCreateSlot_OneOff(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateSlot(context.Background(), oneOffRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, int64(7), resp.InstructorID)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2026-10-20", *resp.Date)
	assert.False(t, resp.IsBooked)
	assert.False(t, resp.IsRecurring)

	require.NotNil(t, f.slots.created.SlotDate)
	assert.Equal(t, types.TimeString("09:00"), f.slots.created.StartTime)
}

func TestCreateSlot_Recurring(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateSlot(context.Background(), recurringRequest())
	require.NoError(t, err)

	assert.True(t, resp.IsRecurring)
	assert.Nil(t, resp.Date)
	assert.Equal(t, []int64{1, 3, 5}, resp.DaysOfWeek)
	assert.Nil(t, f.slots.created.SlotDate)
	assert.True(t, f.slots.created.IsRecurring)
}

func TestCreateSlot_InvalidInput(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name   string
		mutate func(*models.CreateSlotRequest)
	}{
		{"missing date for one-off", func(r *models.CreateSlotRequest) { r.Date = nil }},
		{"past date", func(r *models.CreateSlotRequest) { r.Date = ptr.Ptr("2026-10-12") }},
		{"bad date format", func(r *models.CreateSlotRequest) { r.Date = ptr.Ptr("20.10.2026") }},
		{"bad start time", func(r *models.CreateSlotRequest) { r.StartTime = "9:00" }},
		{"start not before end", func(r *models.CreateSlotRequest) { r.StartTime = "12:00"; r.EndTime = "09:00" }},
		{"empty license types", func(r *models.CreateSlotRequest) { r.LicenseTypes = nil }},
		{"unknown license type", func(r *models.CreateSlotRequest) { r.LicenseTypes = []string{"Z"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := oneOffRequest()
			tc.mutate(req)

			_, err := f.svc.CreateSlot(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateSlot_RecurringInvalidInput(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name   string
		mutate func(*models.CreateSlotRequest)
	}{
		{"date not allowed", func(r *models.CreateSlotRequest) { r.Date = ptr.Ptr("2026-10-20") }},
		{"missing pattern", func(r *models.CreateSlotRequest) { r.RecurrencePattern = nil }},
		{"unknown pattern", func(r *models.CreateSlotRequest) { r.RecurrencePattern = ptr.Ptr("daily") }},
		{"missing days of week", func(r *models.CreateSlotRequest) { r.DaysOfWeek = nil }},
		{"day out of range", func(r *models.CreateSlotRequest) { r.DaysOfWeek = []int64{7} }},
		{"past end date", func(r *models.CreateSlotRequest) { r.RecurrenceEndDate = ptr.Ptr("2026-10-01") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := recurringRequest()
			tc.mutate(req)

			_, err := f.svc.CreateSlot(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

// Тесты DeleteSlot

func TestDeleteSlot_Success(t *testing.T) {
	f := newFixture()
	f.slots.slot = &domain.AvailabilitySlot{ID: 10, InstructorID: 7}

	err := f.svc.DeleteSlot(context.Background(), 10, 7)
	require.NoError(t, err)
	assert.True(t, f.slots.deleted)
}

func TestDeleteSlot_NotFound(t *testing.T) {
	f := newFixture()
	f.slots.getErr = slotRepo.ErrSlotNotFound

	err := f.svc.DeleteSlot(context.Background(), 10, 7)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDeleteSlot_AccessDenied(t *testing.T) {
	f := newFixture()
	f.slots.slot = &domain.AvailabilitySlot{ID: 10, InstructorID: 99}

	err := f.svc.DeleteSlot(context.Background(), 10, 7)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDeleteSlot_Booked(t *testing.T) {
	f := newFixture()
	f.slots.slot = &domain.AvailabilitySlot{ID: 10, InstructorID: 7, IsBooked: true}

	err := f.svc.DeleteSlot(context.Background(), 10, 7)
	assert.ErrorIs(t, err, ErrSlotBooked)
	assert.False(t, f.slots.deleted)
}

func TestDeleteSlot_ReferencedByLessons(t *testing.T) {
	f := newFixture()
	f.slots.slot = &domain.AvailabilitySlot{ID: 10, InstructorID: 7}
	f.lessons.activeCount = 1

	err := f.svc.DeleteSlot(context.Background(), 10, 7)
	assert.ErrorIs(t, err, ErrSlotReferenced)
	assert.False(t, f.slots.deleted)
}

// Тесты GetInstructorSlots

func TestGetInstructorSlots_AccessDenied(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetInstructorSlots(context.Background(), &models.GetInstructorSlotsRequest{
		InstructorID: 7,
		UserID:       99,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetInstructorSlots_FilterAndTotal(t *testing.T) {
	f := newFixture()
	slotDate := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	f.slots.listResult = []*domain.AvailabilitySlot{
		{ID: 1, InstructorID: 7, SlotDate: &slotDate, StartTime: "09:00", EndTime: "12:00"},
	}

	resp, err := f.svc.GetInstructorSlots(context.Background(), &models.GetInstructorSlotsRequest{
		InstructorID: 7,
		UserID:       7,
		DateFrom:     ptr.Ptr("2026-10-15"),
		DateTo:       ptr.Ptr("2026-10-25"),
		OnlyUnbooked: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2026-10-20", *resp.Slots[0].Date)

	assert.True(t, f.slots.lastFilter.OnlyUnbooked)
	require.NotNil(t, f.slots.lastFilter.DateFrom)
	require.NotNil(t, f.slots.lastFilter.DateTo)
}

func TestGetInstructorSlots_DateRangeInverted(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetInstructorSlots(context.Background(), &models.GetInstructorSlotsRequest{
		InstructorID: 7,
		UserID:       7,
		DateFrom:     ptr.Ptr("2026-10-25"),
		DateTo:       ptr.Ptr("2026-10-15"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
