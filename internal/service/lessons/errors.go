package lessons

import "errors"

var (
	// ErrLessonNotFound возвращается, когда занятие не найдено
	ErrLessonNotFound = errors.New("lessons: lesson not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("lessons: access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене занятия
	ErrAlreadyCancelled = errors.New("lessons: lesson is already cancelled")

	// ErrAlreadyCompleted возвращается при операции над завершённым занятием
	ErrAlreadyCompleted = errors.New("lessons: lesson is already completed")

	// ErrAlreadyConfirmed возвращается при повторном подтверждении занятия
	ErrAlreadyConfirmed = errors.New("lessons: lesson is already confirmed")

	// ErrNotConfirmed возвращается при попытке завершить неподтверждённое занятие
	ErrNotConfirmed = errors.New("lessons: lesson is not confirmed")

	// ErrNotPending возвращается, когда операция допустима только для ожидающего занятия
	ErrNotPending = errors.New("lessons: lesson is not pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("lessons: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("lessons: internal error")
)
