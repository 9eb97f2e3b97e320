package book_lesson

import (
	"context"
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error)
	TryReserve(ctx context.Context, id int64) (bool, error)
	CreateBatch(ctx context.Context, slots []*domain.AvailabilitySlot) error
}

// LessonRepository интерфейс репозитория занятий
type LessonRepository interface {
	Create(ctx context.Context, lesson *domain.DrivingLesson) (*domain.DrivingLesson, error)
	GetActiveByStudentAndDate(ctx context.Context, studentID int64, date time.Time) ([]*domain.DrivingLesson, error)
}

// BalanceRepository интерфейс репозитория баланса студента
type BalanceRepository interface {
	TryDebit(ctx context.Context, studentID int64, minutes int) (bool, error)
	GetMinutes(ctx context.Context, studentID int64) (int, error)
}

// AssignmentRepository интерфейс репозитория закреплений инструкторов
type AssignmentRepository interface {
	GetActive(ctx context.Context, studentID int64, courseType string) (*domain.InstructorAssignment, error)
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	GetMinAdvanceHours(ctx context.Context) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
