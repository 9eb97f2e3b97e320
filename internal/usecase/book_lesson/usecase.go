package book_lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	assignmentRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/assignment"
	settingsRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
)

// UseCase use case бронирования занятия по вождению
//
// Создание занятия, списание баланса и разбиение слота - одна логическая операция:
// всё выполняется в сериализуемой транзакции, частичное применение невозможно
type UseCase struct {
	slotRepo       SlotRepository
	lessonRepo     LessonRepository
	balanceRepo    BalanceRepository
	assignmentRepo AssignmentRepository
	settingsRepo   SettingsRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger

	// fallbackAdvanceHours значение minAdvanceHours из конфигурации,
	// используется при отсутствии настройки в БД
	fallbackAdvanceHours int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepository SlotRepository,
	lessonRepository LessonRepository,
	balanceRepository BalanceRepository,
	assignmentRepository AssignmentRepository,
	settingsRepository SettingsRepository,
	txManager TransactionManager,
	fallbackAdvanceHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:             slotRepository,
		lessonRepo:           lessonRepository,
		balanceRepo:          balanceRepository,
		assignmentRepo:       assignmentRepository,
		settingsRepo:         settingsRepository,
		txManager:            txManager,
		timeProvider:         &RealTimeProvider{},
		fallbackAdvanceHours: fallbackAdvanceHours,
		logger:               logger,
	}
}

// Execute выполняет бронирование занятия
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// двойное бронирование слота и уход баланса в минус исключены условными UPDATE
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookLesson: student=%d, course=%s, slot=%d, date=%s, time=%s-%s",
		req.StudentID, req.CourseType, req.AvailabilityID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookLesson: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем активное закрепление инструктора
	assignment, err := uc.assignmentRepo.GetActive(ctx, req.StudentID, req.CourseType)
	if err != nil {
		if errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
			uc.logger.Warn("BookLesson: no active assignment for student=%d, course=%s",
				req.StudentID, req.CourseType)
			return nil, ErrNoActiveAssignment
		}
		uc.logger.Error("BookLesson: failed to get assignment: %v", err)
		return nil, fmt.Errorf("%w: failed to get assignment: %v", ErrInternal, err)
	}

	// 4. Определяем минимальное время до начала занятия
	// Настройка хранится в БД и может меняться администратором;
	// при её отсутствии используем значение из конфигурации
	advanceHours, err := uc.settingsRepo.GetMinAdvanceHours(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("BookLesson: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		advanceHours = uc.fallbackAdvanceHours
	}

	// 5. Проверяем правило заблаговременности
	advanceCheck, err := domain.CanBookLesson(req.Date, req.StartTime, now, advanceHours)
	if err != nil {
		return nil, fmt.Errorf("%w: advance check: %v", ErrInternal, err)
	}
	if !advanceCheck.CanBook {
		uc.logger.Warn("BookLesson: advance check failed for student=%d: %s", req.StudentID, advanceCheck.Reason)
		return nil, fmt.Errorf("%w: %s", ErrTooLateToBook, advanceCheck.Reason)
	}

	var result *domain.DrivingLesson
	var balanceAfter int

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Загружаем слот с блокировкой (FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, req.AvailabilityID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("BookLesson: failed to get slot id=%d: %v", req.AvailabilityID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 6.2. Проверяем слот: дата, инструктор, категория, границы интервала
		if err := validateSlot(slot, req, assignment.InstructorID); err != nil {
			uc.logger.Warn("BookLesson: slot validation failed for slot=%d: %v", slot.ID, err)
			return err
		}

		// 6.3. Проверяем пересечения с другими занятиями студента
		existing, err := uc.lessonRepo.GetActiveByStudentAndDate(txCtx, req.StudentID, req.Date)
		if err != nil {
			uc.logger.Error("BookLesson: failed to get existing lessons: %v", err)
			return fmt.Errorf("%w: failed to get existing lessons: %v", ErrInternal, err)
		}

		overlapCheck := domain.IsSlotAvailable(req.Date, req.StartTime, req.EndTime, existing)
		if !overlapCheck.Available {
			uc.logger.Warn("BookLesson: overlap for student=%d: %s", req.StudentID, overlapCheck.Reason)
			return fmt.Errorf("%w: %s", ErrOverlappingLesson, overlapCheck.Reason)
		}

		// 6.4. Атомарно резервируем слот (is_booked: false -> true)
		reserved, err := uc.slotRepo.TryReserve(txCtx, slot.ID)
		if err != nil {
			uc.logger.Error("BookLesson: failed to reserve slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}
		if !reserved {
			uc.logger.Warn("BookLesson: slot id=%d already booked", slot.ID)
			return ErrSlotAlreadyBooked
		}

		// 6.5. Атомарно списываем баланс с проверкой достаточности
		minutes := req.DurationHours * domain.MinutesPerHour
		debited, err := uc.balanceRepo.TryDebit(txCtx, req.StudentID, minutes)
		if err != nil {
			uc.logger.Error("BookLesson: failed to debit balance for student=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to debit balance: %v", ErrInternal, err)
		}
		if !debited {
			uc.logger.Warn("BookLesson: insufficient balance for student=%d, need %d minutes",
				req.StudentID, minutes)
			return ErrInsufficientBalance
		}

		// 6.6. Создаем занятие
		lesson := &domain.DrivingLesson{
			StudentID:        req.StudentID,
			InstructorID:     assignment.InstructorID,
			AvailabilityID:   &slot.ID,
			LessonDate:       req.Date,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			DurationHours:    req.DurationHours,
			Status:           domain.StatusPending,
			StudentConfirmed: true,
			MeetingPoint:     req.MeetingPoint,
			Notes:            req.Notes,
		}

		created, err := uc.lessonRepo.Create(txCtx, lesson)
		if err != nil {
			uc.logger.Error("BookLesson: failed to create lesson: %v", err)
			return fmt.Errorf("%w: failed to create lesson: %v", ErrInternal, err)
		}

		// 6.7. Создаем остаточные слоты для незанятой части окна
		residuals := domain.SplitSlot(slot, req.StartTime, req.EndTime)
		if len(residuals) > 0 {
			if err := uc.slotRepo.CreateBatch(txCtx, residuals); err != nil {
				uc.logger.Error("BookLesson: failed to create residual slots: %v", err)
				return fmt.Errorf("%w: failed to create residual slots: %v", ErrInternal, err)
			}
			uc.logger.Info("BookLesson: created %d residual slots for slot=%d", len(residuals), slot.ID)
		}

		balanceAfter, err = uc.balanceRepo.GetMinutes(txCtx, req.StudentID)
		if err != nil {
			uc.logger.Error("BookLesson: failed to read balance for student=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: failed to read balance: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookLesson: successfully created lesson id=%d, balance=%d minutes",
		result.ID, balanceAfter)

	return &Response{
		ID:                  result.ID,
		StudentID:           result.StudentID,
		InstructorID:        result.InstructorID,
		AvailabilityID:      result.AvailabilityID,
		LessonDate:          result.LessonDate,
		StartTime:           result.StartTime,
		EndTime:             result.EndTime,
		DurationHours:       result.DurationHours,
		Status:              string(result.Status),
		StudentConfirmed:    result.StudentConfirmed,
		InstructorConfirmed: result.InstructorConfirmed,
		MeetingPoint:        result.MeetingPoint,
		Notes:               result.Notes,
		BalanceMinutes:      balanceAfter,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}
