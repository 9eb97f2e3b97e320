package assignments

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	assignmentRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/assignment"
	"github.com/m04kA/ADS-SchedulingService/internal/service/assignments/models"
)

// Service сервис закреплений инструкторов за студентами
type Service struct {
	assignmentRepo AssignmentRepository
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса закреплений
func NewService(assignmentRepository AssignmentRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		assignmentRepo: assignmentRepository,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetStudentInstructor получает активное закрепление студента по категории курса
// Доступно только самому студенту
func (s *Service) GetStudentInstructor(ctx context.Context, req *models.GetAssignmentRequest) (*models.AssignmentResponse, error) {
	s.logger.Info("GetStudentInstructor: student=%d, courseType=%s", req.StudentID, req.CourseType)

	if req.StudentID != req.UserID {
		s.logger.Warn("GetStudentInstructor: access denied for user=%d to student=%d", req.UserID, req.StudentID)
		return nil, ErrAccessDenied
	}

	if err := validateCourseType(req.CourseType); err != nil {
		return nil, err
	}

	assignment, err := s.getActive(ctx, req.StudentID, req.CourseType, "GetStudentInstructor")
	if err != nil {
		return nil, err
	}

	return models.FromDomainAssignment(assignment), nil
}

// ChangeInstructor меняет инструктора студента по категории курса
// Старое закрепление деактивируется, новое создается в одной транзакции.
// Частичный уникальный индекс гарантирует не более одного активного закрепления
func (s *Service) ChangeInstructor(ctx context.Context, req *models.ChangeInstructorRequest) (*models.AssignmentResponse, error) {
	s.logger.Info("ChangeInstructor: student=%d, newInstructor=%d, courseType=%s",
		req.StudentID, req.NewInstructorID, req.CourseType)

	if req.StudentID != req.UserID {
		s.logger.Warn("ChangeInstructor: access denied for user=%d to student=%d", req.UserID, req.StudentID)
		return nil, ErrAccessDenied
	}

	if err := validateCourseType(req.CourseType); err != nil {
		return nil, err
	}
	if req.NewInstructorID <= 0 {
		return nil, fmt.Errorf("%w: newInstructorId must be positive", ErrInvalidInput)
	}

	var result *models.AssignmentResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.getActive(txCtx, req.StudentID, req.CourseType, "ChangeInstructor")
		if err != nil {
			return err
		}

		if current.InstructorID == req.NewInstructorID {
			s.logger.Warn("ChangeInstructor: instructor=%d is already assigned to student=%d",
				req.NewInstructorID, req.StudentID)
			return ErrSameInstructor
		}

		rowsAffected, err := s.assignmentRepo.Deactivate(txCtx, req.StudentID, current.InstructorID, req.CourseType)
		if err != nil {
			s.logger.Error("ChangeInstructor: failed to deactivate assignment id=%d: %v", current.ID, err)
			return fmt.Errorf("%w: ChangeInstructor - failed to deactivate assignment: %v", ErrInternal, err)
		}
		if rowsAffected == 0 {
			// Закрепление сменили конкурентно между чтением и обновлением
			return ErrAssignmentNotFound
		}

		created, err := s.assignmentRepo.CreateActive(txCtx, req.StudentID, req.NewInstructorID, req.CourseType, req.Reason)
		if err != nil {
			s.logger.Error("ChangeInstructor: failed to create assignment for student=%d: %v", req.StudentID, err)
			return fmt.Errorf("%w: ChangeInstructor - failed to create assignment: %v", ErrInternal, err)
		}

		result = models.FromDomainAssignment(created)
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("ChangeInstructor: student=%d reassigned to instructor=%d", req.StudentID, req.NewInstructorID)
	return result, nil
}

func (s *Service) getActive(ctx context.Context, studentID int64, courseType string, op string) (*domain.InstructorAssignment, error) {
	assignment, err := s.assignmentRepo.GetActive(ctx, studentID, courseType)
	if err != nil {
		if errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
			s.logger.Warn("%s: no active assignment for student=%d, courseType=%s", op, studentID, courseType)
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("%s: repository error for student=%d: %v", op, studentID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return assignment, nil
}

func validateCourseType(courseType string) error {
	if courseType == "" {
		return fmt.Errorf("%w: courseType is required", ErrInvalidInput)
	}
	if !slices.Contains(domain.KnownLicenseTypes, courseType) {
		return fmt.Errorf("%w: unknown courseType %q", ErrInvalidInput, courseType)
	}
	return nil
}
