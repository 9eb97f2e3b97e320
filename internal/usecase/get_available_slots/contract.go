package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	slotRepo "github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	List(ctx context.Context, filter slotRepo.Filter) ([]*domain.AvailabilitySlot, error)
}

// AssignmentRepository интерфейс репозитория закреплений инструкторов
type AssignmentRepository interface {
	GetActive(ctx context.Context, studentID int64, courseType string) (*domain.InstructorAssignment, error)
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	GetMinAdvanceHours(ctx context.Context) (int, error)
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
