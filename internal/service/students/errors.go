package students

import "errors"

var (
	// ErrStudentNotFound студент не найден
	ErrStudentNotFound = errors.New("students: student not found")

	// ErrAccessDenied доступ к балансу запрещен
	ErrAccessDenied = errors.New("students: access denied")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("students: internal error")
)
