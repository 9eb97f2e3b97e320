package book_lesson

import "errors"

var (
	// ErrNoActiveAssignment возвращается, когда у студента нет активного инструктора по категории
	ErrNoActiveAssignment = errors.New("book_lesson: no active instructor assignment")

	// ErrSlotNotFound возвращается, когда слот доступности не найден
	ErrSlotNotFound = errors.New("book_lesson: availability slot not found")

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят другим занятием
	ErrSlotAlreadyBooked = errors.New("book_lesson: slot is already booked")

	// ErrSlotNotDated возвращается при попытке бронирования нераскрытого повторяющегося шаблона
	ErrSlotNotDated = errors.New("book_lesson: slot has no concrete date")

	// ErrWrongInstructor возвращается, когда слот принадлежит не закреплённому инструктору
	ErrWrongInstructor = errors.New("book_lesson: slot belongs to another instructor")

	// ErrLicenseMismatch возвращается, когда слот не поддерживает категорию курса
	ErrLicenseMismatch = errors.New("book_lesson: slot does not support course license type")

	// ErrLessonOutsideSlot возвращается, когда интервал занятия выходит за пределы слота
	ErrLessonOutsideSlot = errors.New("book_lesson: lesson interval is outside the slot window")

	// ErrTooLateToBook возвращается при нарушении минимального времени до начала занятия
	ErrTooLateToBook = errors.New("book_lesson: too late to book this lesson")

	// ErrOverlappingLesson возвращается, когда занятие пересекается с другим занятием студента
	ErrOverlappingLesson = errors.New("book_lesson: overlapping lesson exists")

	// ErrInsufficientBalance возвращается, когда на балансе студента недостаточно минут
	ErrInsufficientBalance = errors.New("book_lesson: insufficient driving balance")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_lesson: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_lesson: internal error")
)
