package book_lesson

import (
	"fmt"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.CourseType == "" {
		return fmt.Errorf("%w: courseType is required", ErrInvalidInput)
	}

	if req.AvailabilityID <= 0 {
		return fmt.Errorf("%w: availabilityID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.DurationHours < domain.MinLessonDurationHours || req.DurationHours > domain.MaxLessonDurationHours {
		return fmt.Errorf("%w: durationHours must be between %d and %d",
			ErrInvalidInput, domain.MinLessonDurationHours, domain.MaxLessonDurationHours)
	}

	// Длительность должна совпадать с интервалом
	intervalMinutes, err := req.StartTime.MinutesUntil(req.EndTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if intervalMinutes != req.DurationHours*domain.MinutesPerHour {
		return fmt.Errorf("%w: durationHours does not match time interval", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return nil
}

// validateSlot проверяет, что занятие может быть создано из указанного слота
func validateSlot(slot *domain.AvailabilitySlot, req *Request, instructorID int64) error {
	if !slot.IsDated() {
		return ErrSlotNotDated
	}

	if !domain.IsSameDay(*slot.SlotDate, req.Date) {
		return fmt.Errorf("%w: slot is on %s", ErrInvalidInput, slot.SlotDate.Format(domain.DateFormat))
	}

	if slot.InstructorID != instructorID {
		return ErrWrongInstructor
	}

	if slot.IsBooked {
		return ErrSlotAlreadyBooked
	}

	if !slot.SupportsLicense(req.CourseType) {
		return ErrLicenseMismatch
	}

	if !slot.ContainsInterval(req.StartTime, req.EndTime) {
		return ErrLessonOutsideSlot
	}

	return nil
}
