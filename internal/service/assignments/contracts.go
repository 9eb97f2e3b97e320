package assignments

import (
	"context"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

// AssignmentRepository интерфейс репозитория закреплений инструкторов
type AssignmentRepository interface {
	GetActive(ctx context.Context, studentID int64, courseType string) (*domain.InstructorAssignment, error)
	Deactivate(ctx context.Context, studentID, instructorID int64, courseType string) (int64, error)
	CreateActive(ctx context.Context, studentID, instructorID int64, courseType string, reason *string) (*domain.InstructorAssignment, error)
}

// TransactionManager интерфейс управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
