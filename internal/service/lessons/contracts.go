package lessons

import (
	"context"
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.DrivingLesson, error)
	GetByStudent(ctx context.Context, studentID int64, status *domain.LessonStatus) ([]*domain.DrivingLesson, error)
	SetInstructorConfirmed(ctx context.Context, id int64, status domain.LessonStatus, confirmedAt *time.Time) error
	Cancel(ctx context.Context, id int64, cancelledBy string, reason *string, isDeducted bool) error
	Complete(ctx context.Context, id int64, recapNotes *string) error
}

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	Release(ctx context.Context, id int64) error
}

// BalanceRepository интерфейс репозитория баланса студента
type BalanceRepository interface {
	Credit(ctx context.Context, studentID int64, minutes int) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
