package book_lesson

import (
	"time"

	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

// Request модель запроса на бронирование занятия
type Request struct {
	StudentID      int64            // ID студента
	CourseType     string           // Категория курса (например, "B")
	AvailabilityID int64            // ID слота доступности инструктора
	Date           time.Time        // Дата занятия (без времени)
	StartTime      types.TimeString // Время начала (например, "11:00")
	EndTime        types.TimeString // Время окончания (например, "12:00")
	DurationHours  int              // Длительность в часах
	MeetingPoint   *string          // Место встречи (опционально)
	Notes          *string          // Заметки студента (опционально)
}

// Response модель ответа с созданным занятием
type Response struct {
	ID             int64
	StudentID      int64
	InstructorID   int64
	AvailabilityID *int64
	LessonDate     time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	DurationHours  int
	Status         string

	StudentConfirmed    bool
	InstructorConfirmed bool

	MeetingPoint *string
	Notes        *string

	// BalanceMinutes остаток баланса студента после списания
	BalanceMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}
