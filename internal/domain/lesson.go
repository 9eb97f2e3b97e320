package domain

import (
	"time"

	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

// LessonStatus статус занятия по вождению
type LessonStatus string

const (
	StatusPending   LessonStatus = "pending"
	StatusConfirmed LessonStatus = "confirmed"
	StatusCompleted LessonStatus = "completed"
	StatusCancelled LessonStatus = "cancelled"
)

// DrivingLesson занятие по вождению между студентом и инструктором
type DrivingLesson struct {
	ID           int64
	StudentID    int64
	InstructorID int64

	// AvailabilityID слот, из которого создано занятие
	// nil, если слот был удалён после отмены занятия - запись занятия при этом сохраняется
	AvailabilityID *int64

	LessonDate    time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours int

	Status LessonStatus

	// Подтверждения сторон: занятие переходит в confirmed, когда оба true
	StudentConfirmed    bool
	InstructorConfirmed bool
	ConfirmedAt         *time.Time

	// IsDeducted был ли списан баланс при отмене (поздняя отмена)
	// Устанавливается только в момент отмены
	IsDeducted bool

	CancelledAt        *time.Time
	CancelledBy        *string
	CancellationReason *string

	CompletedAt *time.Time
	RecapNotes  *string

	MeetingPoint *string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationMinutes длительность занятия в минутах
func (l *DrivingLesson) DurationMinutes() int {
	return l.DurationHours * MinutesPerHour
}

// IsActive возвращает true, если занятие занимает время (ожидает или подтверждено)
func (l *DrivingLesson) IsActive() bool {
	return l.Status == StatusPending || l.Status == StatusConfirmed
}

// IsTerminal возвращает true, если занятие в конечном статусе
func (l *DrivingLesson) IsTerminal() bool {
	return l.Status == StatusCompleted || l.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если занятие можно отменить
func (l *DrivingLesson) CanBeCancelled() bool {
	return !l.IsTerminal()
}

// CanBeConfirmed возвращает true, если инструктор может подтвердить занятие
func (l *DrivingLesson) CanBeConfirmed() bool {
	return l.Status == StatusPending && !l.InstructorConfirmed
}

// CanBeCompleted возвращает true, если занятие можно завершить
func (l *DrivingLesson) CanBeCompleted() bool {
	return l.Status == StatusConfirmed
}
