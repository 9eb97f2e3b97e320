package slots

import (
	"context"
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	"github.com/m04kA/ADS-SchedulingService/internal/infra/storage/slot"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	Create(ctx context.Context, s *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error)
	List(ctx context.Context, filter slot.Filter) ([]*domain.AvailabilitySlot, error)
	Delete(ctx context.Context, id int64) error
}

// LessonRepository интерфейс репозитория занятий
// Используется для проверки ссылок на слот перед удалением
type LessonRepository interface {
	CountActiveByAvailability(ctx context.Context, availabilityID int64) (int, error)
}

// TransactionManager интерфейс управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}
