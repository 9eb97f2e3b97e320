package lessons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	lessonRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/lesson"
	slotRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons/models"
)

// Service сервис жизненного цикла занятий: отмена, подтверждение, отказ, завершение
//
// Переходы статусов:
//
//	pending -> confirmed -> completed
//	pending -> cancelled
//	confirmed -> cancelled
//
// completed и cancelled - конечные статусы
type Service struct {
	lessonRepo   LessonRepository
	slotRepo     SlotRepository
	balanceRepo  BalanceRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger

	// cutoffHours порог поздней отмены до начала занятия
	cutoffHours int
}

// NewService создает новый экземпляр сервиса занятий
func NewService(
	lessonRepository LessonRepository,
	slotRepository SlotRepository,
	balanceRepository BalanceRepository,
	txManager TransactionManager,
	cutoffHours int,
	logger Logger,
) *Service {
	return &Service{
		lessonRepo:   lessonRepository,
		slotRepo:     slotRepository,
		balanceRepo:  balanceRepository,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		cutoffHours:  cutoffHours,
		logger:       logger,
	}
}

// GetByID получает занятие по ID
// Доступ имеют только студент и инструктор этого занятия
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.LessonResponse, error) {
	s.logger.Info("GetByID: fetching lesson id=%d for user=%d", id, userID)

	lesson, err := s.getLesson(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if lesson.StudentID != userID && lesson.InstructorID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to lesson id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainLesson(lesson), nil
}

// GetStudentLessons получает историю занятий студента
// Опционально фильтрует по статусу; доступна только самому студенту
func (s *Service) GetStudentLessons(ctx context.Context, req *models.GetStudentLessonsRequest) (*models.LessonListResponse, error) {
	s.logger.Info("GetStudentLessons: student=%d, status=%v", req.StudentID, req.Status)

	if req.StudentID != req.UserID {
		s.logger.Warn("GetStudentLessons: access denied for user=%d to student=%d lessons",
			req.UserID, req.StudentID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.LessonStatus
	if req.Status != nil {
		status, err := models.ToDomainLessonStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentLessons: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	lessons, err := s.lessonRepo.GetByStudent(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentLessons: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentLessons - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLessonList(lessons), nil
}

// Cancel отменяет занятие по инициативе студента
//
// Отмена позже, чем за cutoffHours часов до начала, считается поздней:
// оплаченный час сгорает (is_deducted = true), баланс не возвращается.
// При ранней отмене (или уважительной причине) баланс возвращается полностью.
// Слот-якорь освобождается; остаточные слоты, созданные при бронировании,
// остаются отдельными записями и обратно не сливаются
func (s *Service) Cancel(ctx context.Context, lessonID int64, req *models.CancelLessonRequest) (*models.CancelLessonResult, error) {
	s.logger.Info("Cancel: cancelling lesson id=%d by user=%d", lessonID, req.UserID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var result *models.CancelLessonResult

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		lesson, err := s.getLesson(txCtx, lessonID, "Cancel")
		if err != nil {
			return err
		}

		if lesson.StudentID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%d to lesson id=%d", req.UserID, lessonID)
			return ErrAccessDenied
		}

		if err := checkNotTerminal(lesson); err != nil {
			s.logger.Warn("Cancel: lesson id=%d cannot be cancelled, status=%s", lessonID, lesson.Status)
			return err
		}

		now := s.timeProvider.Now()

		deduct, err := domain.ShouldDeductHour(
			lesson.LessonDate, lesson.StartTime, now, s.cutoffHours,
			req.IsUrgent, req.IsPreApproved,
		)
		if err != nil {
			s.logger.Error("Cancel: deduction check failed for lesson id=%d: %v", lessonID, err)
			return fmt.Errorf("%w: Cancel - deduction check: %v", ErrInternal, err)
		}

		if err := s.lessonRepo.Cancel(txCtx, lessonID, domain.CancelledByStudent, req.Reason, deduct); err != nil {
			s.logger.Error("Cancel: repository error for lesson id=%d: %v", lessonID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Ранняя отмена возвращает баланс полностью
		if !deduct {
			if err := s.balanceRepo.Credit(txCtx, lesson.StudentID, lesson.DurationMinutes()); err != nil {
				s.logger.Error("Cancel: failed to credit balance for student=%d: %v", lesson.StudentID, err)
				return fmt.Errorf("%w: Cancel - failed to credit balance: %v", ErrInternal, err)
			}
		}

		if err := s.releaseSlot(txCtx, lesson); err != nil {
			return err
		}

		updated := *lesson
		updated.Status = domain.StatusCancelled
		updated.IsDeducted = deduct
		updated.CancelledAt = &now
		cancelledBy := domain.CancelledByStudent
		updated.CancelledBy = &cancelledBy
		updated.CancellationReason = req.Reason

		result = &models.CancelLessonResult{
			Lesson:       models.FromDomainLesson(&updated),
			HourDeducted: deduct,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled lesson id=%d, deducted=%v", lessonID, result.HourDeducted)
	return result, nil
}

// Confirm подтверждает занятие инструктором
// Когда подтверждены обе стороны, занятие переходит в confirmed
func (s *Service) Confirm(ctx context.Context, lessonID int64, instructorID int64) (*models.LessonResponse, error) {
	s.logger.Info("Confirm: confirming lesson id=%d by instructor=%d", lessonID, instructorID)

	var result *models.LessonResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		lesson, err := s.getLesson(txCtx, lessonID, "Confirm")
		if err != nil {
			return err
		}

		if lesson.InstructorID != instructorID {
			s.logger.Warn("Confirm: access denied for instructor=%d to lesson id=%d", instructorID, lessonID)
			return ErrAccessDenied
		}

		if lesson.Status == domain.StatusConfirmed {
			return ErrAlreadyConfirmed
		}
		if err := checkNotTerminal(lesson); err != nil {
			return err
		}
		if !lesson.CanBeConfirmed() {
			return ErrAlreadyConfirmed
		}

		now := s.timeProvider.Now()

		newStatus := domain.StatusPending
		updated := *lesson
		updated.InstructorConfirmed = true

		// Обе стороны подтвердили - занятие подтверждено
		if lesson.StudentConfirmed {
			newStatus = domain.StatusConfirmed
			updated.Status = newStatus
			updated.ConfirmedAt = &now
		}

		confirmedAt := updated.ConfirmedAt
		if err := s.lessonRepo.SetInstructorConfirmed(txCtx, lessonID, newStatus, confirmedAt); err != nil {
			s.logger.Error("Confirm: repository error for lesson id=%d: %v", lessonID, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		result = models.FromDomainLesson(&updated)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: lesson id=%d confirmed by instructor, status=%s", lessonID, result.Status)
	return result, nil
}

// Reject отказ инструктора от ожидающего занятия
// Занятие отменяется, слот-якорь освобождается, баланс возвращается полностью
// (отказ инструктора не стоит студенту оплаченного часа)
func (s *Service) Reject(ctx context.Context, lessonID int64, req *models.RejectLessonRequest) (*models.LessonResponse, error) {
	s.logger.Info("Reject: rejecting lesson id=%d by instructor=%d", lessonID, req.InstructorID)

	var result *models.LessonResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		lesson, err := s.getLesson(txCtx, lessonID, "Reject")
		if err != nil {
			return err
		}

		if lesson.InstructorID != req.InstructorID {
			s.logger.Warn("Reject: access denied for instructor=%d to lesson id=%d", req.InstructorID, lessonID)
			return ErrAccessDenied
		}

		if err := checkNotTerminal(lesson); err != nil {
			return err
		}
		if lesson.Status != domain.StatusPending {
			s.logger.Warn("Reject: lesson id=%d is not pending, status=%s", lessonID, lesson.Status)
			return ErrNotPending
		}

		if err := s.lessonRepo.Cancel(txCtx, lessonID, domain.CancelledByInstructor, req.Reason, false); err != nil {
			s.logger.Error("Reject: repository error for lesson id=%d: %v", lessonID, err)
			return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
		}

		if err := s.balanceRepo.Credit(txCtx, lesson.StudentID, lesson.DurationMinutes()); err != nil {
			s.logger.Error("Reject: failed to credit balance for student=%d: %v", lesson.StudentID, err)
			return fmt.Errorf("%w: Reject - failed to credit balance: %v", ErrInternal, err)
		}

		if err := s.releaseSlot(txCtx, lesson); err != nil {
			return err
		}

		now := s.timeProvider.Now()
		updated := *lesson
		updated.Status = domain.StatusCancelled
		updated.CancelledAt = &now
		cancelledBy := domain.CancelledByInstructor
		updated.CancelledBy = &cancelledBy
		updated.CancellationReason = req.Reason

		result = models.FromDomainLesson(&updated)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Reject: successfully rejected lesson id=%d", lessonID)
	return result, nil
}

// Complete завершает подтверждённое занятие инструктором
// Баланс не изменяется: час был списан при бронировании
func (s *Service) Complete(ctx context.Context, lessonID int64, req *models.CompleteLessonRequest) (*models.LessonResponse, error) {
	s.logger.Info("Complete: completing lesson id=%d by instructor=%d", lessonID, req.InstructorID)

	if req.RecapNotes != nil && len(*req.RecapNotes) > domain.MaxRecapNotesLength {
		return nil, fmt.Errorf("%w: recap notes are too long", ErrInvalidInput)
	}

	var result *models.LessonResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		lesson, err := s.getLesson(txCtx, lessonID, "Complete")
		if err != nil {
			return err
		}

		if lesson.InstructorID != req.InstructorID {
			s.logger.Warn("Complete: access denied for instructor=%d to lesson id=%d", req.InstructorID, lessonID)
			return ErrAccessDenied
		}

		if err := checkNotTerminal(lesson); err != nil {
			return err
		}
		if !lesson.CanBeCompleted() {
			s.logger.Warn("Complete: lesson id=%d is not confirmed, status=%s", lessonID, lesson.Status)
			return ErrNotConfirmed
		}

		if err := s.lessonRepo.Complete(txCtx, lessonID, req.RecapNotes); err != nil {
			s.logger.Error("Complete: repository error for lesson id=%d: %v", lessonID, err)
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		now := s.timeProvider.Now()
		updated := *lesson
		updated.Status = domain.StatusCompleted
		updated.CompletedAt = &now
		updated.RecapNotes = req.RecapNotes

		result = models.FromDomainLesson(&updated)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: successfully completed lesson id=%d", lessonID)
	return result, nil
}

// Вспомогательные методы

// getLesson загружает занятие, транслируя ошибку репозитория в ошибку сервиса
func (s *Service) getLesson(ctx context.Context, id int64, op string) (*domain.DrivingLesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, lessonRepo.ErrLessonNotFound) {
			s.logger.Warn("%s: lesson id=%d not found", op, id)
			return nil, ErrLessonNotFound
		}
		s.logger.Error("%s: repository error for lesson id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return lesson, nil
}

// releaseSlot освобождает слот-якорь занятия, если он ещё существует
// Слот мог быть удалён после предыдущей отмены - это не ошибка
func (s *Service) releaseSlot(ctx context.Context, lesson *domain.DrivingLesson) error {
	if lesson.AvailabilityID == nil {
		return nil
	}

	err := s.slotRepo.Release(ctx, *lesson.AvailabilityID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("releaseSlot: slot id=%d no longer exists for lesson id=%d",
				*lesson.AvailabilityID, lesson.ID)
			return nil
		}
		s.logger.Error("releaseSlot: failed to release slot id=%d: %v", *lesson.AvailabilityID, err)
		return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
	}

	return nil
}

// checkNotTerminal проверяет, что занятие не в конечном статусе
func checkNotTerminal(lesson *domain.DrivingLesson) error {
	switch lesson.Status {
	case domain.StatusCancelled:
		return ErrAlreadyCancelled
	case domain.StatusCompleted:
		return ErrAlreadyCompleted
	default:
		return nil
	}
}
