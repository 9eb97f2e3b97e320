package get_available_slots

import "errors"

var (
	// ErrNoActiveAssignment возвращается, когда у студента нет активного инструктора по категории
	ErrNoActiveAssignment = errors.New("get_available_slots: no active instructor assignment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
