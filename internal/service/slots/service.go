package slots

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	slotRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/ADS-SchedulingService/internal/service/slots/models"
	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

// Service сервис управления слотами доступности инструкторов
type Service struct {
	slotRepo     SlotRepository
	lessonRepo   LessonRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepository SlotRepository,
	lessonRepository LessonRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepository,
		lessonRepo:   lessonRepository,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateSlot создает слот доступности: разовый на дату или повторяющийся шаблон
// Шаблоны хранятся как есть и не раскрываются в датированные экземпляры
func (s *Service) CreateSlot(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: instructor=%d, date=%v, interval=%s-%s",
		req.InstructorID, req.Date, req.StartTime, req.EndTime)

	slot, err := s.buildSlot(req)
	if err != nil {
		s.logger.Warn("CreateSlot: validation failed for instructor=%d: %v", req.InstructorID, err)
		return nil, err
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateSlot: repository error for instructor=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: CreateSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSlot: successfully created slot id=%d for instructor=%d", created.ID, req.InstructorID)
	return models.FromDomainSlot(created), nil
}

// DeleteSlot удаляет слот доступности
// Удалить можно только свободный слот, на который не ссылаются активные занятия
func (s *Service) DeleteSlot(ctx context.Context, slotID int64, instructorID int64) error {
	s.logger.Info("DeleteSlot: deleting slot id=%d by instructor=%d", slotID, instructorID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := s.slotRepo.GetByID(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			s.logger.Error("DeleteSlot: repository error for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: DeleteSlot - repository error: %v", ErrInternal, err)
		}

		if slot.InstructorID != instructorID {
			s.logger.Warn("DeleteSlot: access denied for instructor=%d to slot id=%d", instructorID, slotID)
			return ErrAccessDenied
		}
		if slot.IsBooked {
			s.logger.Warn("DeleteSlot: slot id=%d is booked", slotID)
			return ErrSlotBooked
		}

		count, err := s.lessonRepo.CountActiveByAvailability(txCtx, slotID)
		if err != nil {
			s.logger.Error("DeleteSlot: failed to count lessons for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: DeleteSlot - failed to count lessons: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("DeleteSlot: slot id=%d is referenced by %d active lessons", slotID, count)
			return ErrSlotReferenced
		}

		if err := s.slotRepo.Delete(txCtx, slotID); err != nil {
			switch {
			case errors.Is(err, slotRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			case errors.Is(err, slotRepo.ErrSlotNotDeletable):
				return ErrSlotBooked
			default:
				s.logger.Error("DeleteSlot: failed to delete slot id=%d: %v", slotID, err)
				return fmt.Errorf("%w: DeleteSlot - failed to delete slot: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("DeleteSlot: successfully deleted slot id=%d", slotID)
	return nil
}

// GetInstructorSlots получает календарь слотов инструктора
// Доступен только самому инструктору; включает шаблоны и занятые слоты
func (s *Service) GetInstructorSlots(ctx context.Context, req *models.GetInstructorSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("GetInstructorSlots: instructor=%d, from=%v, to=%v", req.InstructorID, req.DateFrom, req.DateTo)

	if req.InstructorID != req.UserID {
		s.logger.Warn("GetInstructorSlots: access denied for user=%d to instructor=%d calendar",
			req.UserID, req.InstructorID)
		return nil, ErrAccessDenied
	}

	filter := slotRepo.Filter{
		InstructorID: &req.InstructorID,
		OnlyUnbooked: req.OnlyUnbooked,
	}

	dateFrom, err := parseDatePtr(req.DateFrom)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dateFrom", ErrInvalidInput)
	}
	dateTo, err := parseDatePtr(req.DateTo)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid dateTo", ErrInvalidInput)
	}
	filter.DateFrom = dateFrom
	filter.DateTo = dateTo

	if dateFrom != nil && dateTo != nil && dateTo.Before(*dateFrom) {
		return nil, fmt.Errorf("%w: dateTo is before dateFrom", ErrInvalidInput)
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("GetInstructorSlots: repository error for instructor=%d: %v", req.InstructorID, err)
		return nil, fmt.Errorf("%w: GetInstructorSlots - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// buildSlot валидирует запрос и собирает доменный слот
func (s *Service) buildSlot(req *models.CreateSlotRequest) (*domain.AvailabilitySlot, error) {
	if req.InstructorID <= 0 {
		return nil, fmt.Errorf("%w: instructorId must be positive", ErrInvalidInput)
	}

	startTime := types.TimeString(req.StartTime)
	if err := startTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid startTime format, expected HH:MM", ErrInvalidInput)
	}
	endTime := types.TimeString(req.EndTime)
	if err := endTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid endTime format, expected HH:MM", ErrInvalidInput)
	}
	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if len(req.LicenseTypes) == 0 {
		return nil, fmt.Errorf("%w: licenseTypes is required", ErrInvalidInput)
	}
	for _, lt := range req.LicenseTypes {
		if !slices.Contains(domain.KnownLicenseTypes, lt) {
			return nil, fmt.Errorf("%w: unknown license type %q", ErrInvalidInput, lt)
		}
	}

	slot := &domain.AvailabilitySlot{
		InstructorID: req.InstructorID,
		StartTime:    startTime,
		EndTime:      endTime,
		LicenseTypes: req.LicenseTypes,
	}

	if req.IsRecurring {
		return s.buildRecurring(req, slot)
	}

	if req.Date == nil {
		return nil, fmt.Errorf("%w: date is required for a one-off slot", ErrInvalidInput)
	}
	slotDate, err := time.Parse(domain.DateFormat, *req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	if slotDate.Before(domain.DateOnly(s.timeProvider.Now())) {
		return nil, fmt.Errorf("%w: date must not be in the past", ErrInvalidInput)
	}
	slot.SlotDate = &slotDate

	return slot, nil
}

// buildRecurring дополняет слот полями повторяющегося шаблона
func (s *Service) buildRecurring(req *models.CreateSlotRequest, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	if req.Date != nil {
		return nil, fmt.Errorf("%w: date is not allowed for a recurring slot", ErrInvalidInput)
	}
	if req.RecurrencePattern == nil || *req.RecurrencePattern != string(domain.RecurrenceWeekly) {
		return nil, fmt.Errorf("%w: recurrencePattern must be %q", ErrInvalidInput, domain.RecurrenceWeekly)
	}
	if len(req.DaysOfWeek) == 0 {
		return nil, fmt.Errorf("%w: daysOfWeek is required for a recurring slot", ErrInvalidInput)
	}
	for _, day := range req.DaysOfWeek {
		if day < 0 || day > 6 {
			return nil, fmt.Errorf("%w: daysOfWeek values must be in range 0-6", ErrInvalidInput)
		}
	}

	slot.IsRecurring = true
	slot.RecurrencePattern = req.RecurrencePattern
	slot.DaysOfWeek = req.DaysOfWeek

	if req.RecurrenceEndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *req.RecurrenceEndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid recurrenceEndDate format, expected YYYY-MM-DD", ErrInvalidInput)
		}
		if endDate.Before(domain.DateOnly(s.timeProvider.Now())) {
			return nil, fmt.Errorf("%w: recurrenceEndDate must not be in the past", ErrInvalidInput)
		}
		slot.RecurrenceEndDate = &endDate
	}

	return slot, nil
}

func parseDatePtr(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := time.Parse(domain.DateFormat, *value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
