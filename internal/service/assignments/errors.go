package assignments

import "errors"

var (
	// ErrAssignmentNotFound активное закрепление не найдено
	ErrAssignmentNotFound = errors.New("assignments: assignment not found")

	// ErrAccessDenied доступ к закреплению запрещен
	ErrAccessDenied = errors.New("assignments: access denied")

	// ErrSameInstructor новый инструктор совпадает с текущим
	ErrSameInstructor = errors.New("assignments: new instructor is the same as current")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("assignments: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("assignments: internal error")
)
