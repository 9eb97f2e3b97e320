package students

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	balanceRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/balance"
	"github.com/m04kA/ADS-SchedulingService/internal/service/students/models"
)

// Service сервис данных студентов
type Service struct {
	balanceRepo BalanceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса студентов
func NewService(balanceRepository BalanceRepository, logger Logger) *Service {
	return &Service{
		balanceRepo: balanceRepository,
		logger:      logger,
	}
}

// GetBalance получает баланс вождения студента в минутах
// Доступен только самому студенту
func (s *Service) GetBalance(ctx context.Context, studentID int64, userID int64) (*models.BalanceResponse, error) {
	s.logger.Info("GetBalance: fetching balance for student=%d", studentID)

	if studentID != userID {
		s.logger.Warn("GetBalance: access denied for user=%d to student=%d balance", userID, studentID)
		return nil, ErrAccessDenied
	}

	minutes, err := s.balanceRepo.GetMinutes(ctx, studentID)
	if err != nil {
		if errors.Is(err, balanceRepo.ErrUserNotFound) {
			s.logger.Warn("GetBalance: student=%d not found", studentID)
			return nil, ErrStudentNotFound
		}
		s.logger.Error("GetBalance: repository error for student=%d: %v", studentID, err)
		return nil, fmt.Errorf("%w: GetBalance - repository error: %v", ErrInternal, err)
	}

	return &models.BalanceResponse{
		StudentID:      studentID,
		BalanceMinutes: minutes,
		BalanceHours:   minutes / domain.MinutesPerHour,
	}, nil
}
