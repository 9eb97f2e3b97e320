package domain

// Значения по умолчанию для настроек расписания
const (
	// DefaultMinAdvanceBookingHours минимальное время до начала занятия при бронировании
	// Используется, когда настройка не задана в БД и в конфигурации
	DefaultMinAdvanceBookingHours = 24

	// DefaultCancellationCutoffHours порог "поздней" отмены до начала занятия
	DefaultCancellationCutoffHours = 48

	// DefaultLookaheadDays горизонт выдачи доступных слотов студенту
	DefaultLookaheadDays = 30
)

// Бизнес-ограничения
const (
	MinLessonDurationHours      = 1
	MaxLessonDurationHours      = 4
	MinutesPerHour              = 60
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxRecapNotesLength         = 2000
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Кто инициировал отмену занятия
const (
	CancelledByStudent    = "student"
	CancelledByInstructor = "instructor"
)

// Категории водительских прав, поддерживаемые автошколой
var KnownLicenseTypes = []string{"A", "A1", "B", "BE", "C", "CE", "D"}

// ActiveLessonStatuses статусы занятий, занимающих время студента и инструктора
// Используется при проверке пересечений и при подсчёте занятости слота
var ActiveLessonStatuses = []LessonStatus{
	StatusPending,
	StatusConfirmed,
}
