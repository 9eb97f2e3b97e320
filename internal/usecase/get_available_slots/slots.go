package get_available_slots

import (
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

// filterByAdvanceRule оставляет только слоты, начало которых проходит правило
// заблаговременности: до начала слота остается не меньше advanceHours часов
func filterByAdvanceRule(slots []*domain.AvailabilitySlot, now time.Time, advanceHours int) []*domain.AvailabilitySlot {
	filtered := make([]*domain.AvailabilitySlot, 0, len(slots))

	for _, s := range slots {
		if s.SlotDate == nil {
			continue
		}

		check, err := domain.CanBookLesson(*s.SlotDate, s.StartTime, now, advanceHours)
		if err != nil {
			// Слот с некорректным временем не показываем
			continue
		}
		if check.CanBook {
			filtered = append(filtered, s)
		}
	}

	return filtered
}

// toResponseSlots конвертирует доменные слоты в модель ответа
func toResponseSlots(slots []*domain.AvailabilitySlot) []Slot {
	result := make([]Slot, len(slots))

	for i, s := range slots {
		result[i] = Slot{
			ID:           s.ID,
			InstructorID: s.InstructorID,
			Date:         *s.SlotDate,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			LicenseTypes: s.LicenseTypes,
		}
	}

	return result
}
