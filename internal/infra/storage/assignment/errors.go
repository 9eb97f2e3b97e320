package assignment

import "errors"

var (
	// ErrAssignmentNotFound возвращается, когда активное закрепление не найдено
	ErrAssignmentNotFound = errors.New("assignment.repository: active assignment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("assignment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("assignment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("assignment.repository: failed to scan row")
)
