package domain

import (
	"time"

	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

// RecurrencePattern шаблон повторения слота доступности
type RecurrencePattern string

const (
	RecurrenceWeekly RecurrencePattern = "weekly"
)

// AvailabilitySlot окно доступности инструктора для бронирования
//
// Слот может быть:
// - разовым (SlotDate задан, IsRecurring = false)
// - повторяющимся шаблоном (SlotDate = nil до раскрытия, задан RecurrencePattern)
// - остаточным (создан аллокатором из незанятой части слота при частичном бронировании)
//
// После бронирования слот помечается IsBooked = true и никогда не удаляется,
// пока на него ссылается занятие - он остаётся якорем для аудита
type AvailabilitySlot struct {
	ID           int64
	InstructorID int64

	// SlotDate nil для нераскрытых повторяющихся шаблонов
	SlotDate *time.Time

	StartTime types.TimeString
	EndTime   types.TimeString

	// IsBooked true, когда слот полностью занят ровно одним занятием
	IsBooked bool

	// LicenseTypes категории прав, для которых слот доступен
	LicenseTypes []string

	IsRecurring       bool
	RecurrencePattern *string
	DaysOfWeek        []int64
	RecurrenceEndDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupportsLicense возвращает true, если слот поддерживает указанную категорию прав
func (s *AvailabilitySlot) SupportsLicense(licenseType string) bool {
	for _, lt := range s.LicenseTypes {
		if lt == licenseType {
			return true
		}
	}
	return false
}

// ContainsInterval возвращает true, если интервал [start, end) целиком лежит внутри слота
func (s *AvailabilitySlot) ContainsInterval(start, end types.TimeString) bool {
	return !start.IsBefore(s.StartTime) && !end.IsAfter(s.EndTime)
}

// IsDated возвращает true, если слот привязан к конкретной дате
func (s *AvailabilitySlot) IsDated() bool {
	return s.SlotDate != nil
}
