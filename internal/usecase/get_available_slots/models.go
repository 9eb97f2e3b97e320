package get_available_slots

import (
	"time"

	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	StudentID  int64  // ID студента
	CourseType string // Категория курса (например, "B")
}

// Slot доступный для бронирования слот
type Slot struct {
	ID           int64
	InstructorID int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	LicenseTypes []string
}

// Response модель ответа со списком доступных слотов
type Response struct {
	InstructorID int64
	Slots        []Slot
}
