package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString время в формате "HH:MM" (время внутри дня, без даты и таймзоны)
// Хранится в БД как text, сравнивается лексикографически (формат это позволяет)
type TimeString string

var (
	// ErrInvalidFormat возвращается при некорректном формате времени
	ErrInvalidFormat = errors.New("types: invalid time string format")

	// ErrOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrOutOfRange = errors.New("types: time is out of day range")
)

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат "HH:MM" и корректность значений часов и минут
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	hours, minutes, err := t.parts()
	if err != nil {
		return err
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	return nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	hours, minutes, err := t.parts()
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}

// AddMinutes возвращает новое время, сдвинутое на delta минут вперед
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += delta
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrOutOfRange, string(t), delta)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// MinutesUntil возвращает количество минут от t до other (other - t)
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	from, err := t.Minutes()
	if err != nil {
		return 0, err
	}
	to, err := other.Minutes()
	if err != nil {
		return 0, err
	}
	return to - from, nil
}

// IsBefore возвращает true, если t раньше other
// Формат "HH:MM" допускает лексикографическое сравнение
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter возвращает true, если t позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// ToTime комбинирует дату и время в time.Time в указанной локации
func (t TimeString) ToTime(date time.Time) (time.Time, error) {
	hours, minutes, err := t.parts()
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hours, minutes, 0, 0, date.Location()), nil
}

// parts разбирает строку на часы и минуты
func (t TimeString) parts() (int, int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hours, &minutes); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return hours, minutes, nil
}
