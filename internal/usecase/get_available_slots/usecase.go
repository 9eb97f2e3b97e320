package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	assignmentRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/assignment"
	settingsRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/ADS-SchedulingService/pkg/ptr"
)

// UseCase use case выдачи доступных слотов студенту
type UseCase struct {
	slotRepo       SlotRepository
	assignmentRepo AssignmentRepository
	settingsRepo   SettingsRepository
	timeProvider   TimeProvider
	logger         Logger

	fallbackAdvanceHours int
	lookaheadDays        int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepository SlotRepository,
	assignmentRepository AssignmentRepository,
	settingsRepository SettingsRepository,
	fallbackAdvanceHours int,
	lookaheadDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:             slotRepository,
		assignmentRepo:       assignmentRepository,
		settingsRepo:         settingsRepository,
		timeProvider:         &RealTimeProvider{},
		fallbackAdvanceHours: fallbackAdvanceHours,
		lookaheadDays:        lookaheadDays,
		logger:               logger,
	}
}

// Execute возвращает слоты закреплённого инструктора, доступные студенту:
// незанятые, поддерживающие категорию курса, в пределах горизонта lookaheadDays
// и проходящие правило заблаговременности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: student=%d, course=%s", req.StudentID, req.CourseType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем активное закрепление инструктора
	assignment, err := uc.assignmentRepo.GetActive(ctx, req.StudentID, req.CourseType)
	if err != nil {
		if errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
			uc.logger.Warn("GetAvailableSlots: no active assignment for student=%d, course=%s",
				req.StudentID, req.CourseType)
			return nil, ErrNoActiveAssignment
		}
		uc.logger.Error("GetAvailableSlots: failed to get assignment: %v", err)
		return nil, fmt.Errorf("%w: failed to get assignment: %v", ErrInternal, err)
	}

	// 3. Определяем правило заблаговременности
	advanceHours, err := uc.settingsRepo.GetMinAdvanceHours(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		advanceHours = uc.fallbackAdvanceHours
	}

	// 4. Выбираем незанятые слоты закреплённого инструктора в горизонте lookaheadDays
	now := uc.timeProvider.Now()
	dateFrom := domain.DateOnly(now)
	dateTo := dateFrom.AddDate(0, 0, uc.lookaheadDays)

	slots, err := uc.slotRepo.List(ctx, slotRepo.Filter{
		InstructorID: ptr.Ptr(assignment.InstructorID),
		LicenseType:  ptr.Ptr(req.CourseType),
		DateFrom:     &dateFrom,
		DateTo:       &dateTo,
		OnlyUnbooked: true,
		OnlyDated:    true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 5. Отбрасываем слоты, не проходящие правило заблаговременности
	available := filterByAdvanceRule(slots, now, advanceHours)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for student=%d",
		len(available), len(slots), req.StudentID)

	return &Response{
		InstructorID: assignment.InstructorID,
		Slots:        toResponseSlots(available),
	}, nil
}
