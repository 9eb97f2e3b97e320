package slots

import "errors"

var (
	// ErrSlotNotFound слот не найден
	ErrSlotNotFound = errors.New("slots: slot not found")

	// ErrAccessDenied доступ к слоту запрещен
	ErrAccessDenied = errors.New("slots: access denied")

	// ErrSlotBooked слот уже забронирован и не может быть удален
	ErrSlotBooked = errors.New("slots: slot is booked")

	// ErrSlotReferenced на слот ссылаются активные занятия
	ErrSlotReferenced = errors.New("slots: slot is referenced by active lessons")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("slots: invalid input")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("slots: internal error")
)
