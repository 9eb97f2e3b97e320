package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotAlreadyBooked возвращается, когда слот уже занят другим занятием
	ErrSlotAlreadyBooked = errors.New("slot.repository: slot is already booked")

	// ErrSlotNotDeletable возвращается при попытке удалить забронированный слот
	ErrSlotNotDeletable = errors.New("slot.repository: booked slot cannot be deleted")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
