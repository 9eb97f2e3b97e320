package domain

import "github.com/m04kA/ADS-SchedulingService/pkg/types"

// SplitSlot возвращает остаточные слоты для незанятой части окна доступности
// после бронирования занятия [lessonStart, lessonEnd) внутри слота
//
// Исходный слот при этом помечается IsBooked = true вызывающей стороной и не удаляется -
// он остаётся якорем, на который ссылается занятие.
//
// Остаточные слоты:
// - наследуют инструктора, дату и категории прав исходного слота
// - всегда разовые (не повторяющиеся), чтобы повторные разбиения не плодили шаблоны
// - создаются без минимальной длительности: остаток любой положительной длины сохраняется
//
// Если занятие занимает слот целиком, остатков нет
func SplitSlot(slot *AvailabilitySlot, lessonStart, lessonEnd types.TimeString) []*AvailabilitySlot {
	residuals := make([]*AvailabilitySlot, 0, 2)

	if lessonStart.IsAfter(slot.StartTime) {
		residuals = append(residuals, newResidual(slot, slot.StartTime, lessonStart))
	}

	if lessonEnd.IsBefore(slot.EndTime) {
		residuals = append(residuals, newResidual(slot, lessonEnd, slot.EndTime))
	}

	return residuals
}

// newResidual создает разовый незабронированный слот на интервал [start, end)
func newResidual(parent *AvailabilitySlot, start, end types.TimeString) *AvailabilitySlot {
	licenseTypes := make([]string, len(parent.LicenseTypes))
	copy(licenseTypes, parent.LicenseTypes)

	return &AvailabilitySlot{
		InstructorID: parent.InstructorID,
		SlotDate:     parent.SlotDate,
		StartTime:    start,
		EndTime:      end,
		IsBooked:     false,
		LicenseTypes: licenseTypes,
		IsRecurring:  false,
	}
}
