package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

// Чистые функции политики бронирования и отмены занятий.
// Все функции принимают текущее время и настройки параметрами,
// чтобы оставаться детерминированными и тестируемыми.

// BookingCheck результат проверки возможности бронирования
type BookingCheck struct {
	CanBook bool
	Reason  string
}

// AvailabilityCheck результат проверки пересечения с существующими занятиями
type AvailabilityCheck struct {
	Available bool
	Reason    string
}

// CancellationCheck результат проверки отмены занятия
type CancellationCheck struct {
	Allowed bool
	// IsLate true, если отмена происходит внутри порога cutoffHours до начала занятия
	IsLate bool
}

// CanBookLesson проверяет, что занятие бронируется не позже,
// чем за advanceHours часов до начала
func CanBookLesson(date time.Time, startTime types.TimeString, now time.Time, advanceHours int) (BookingCheck, error) {
	lessonStart, err := startTime.ToTime(date)
	if err != nil {
		return BookingCheck{}, err
	}

	minStart := now.Add(time.Duration(advanceHours) * time.Hour)
	if lessonStart.Before(minStart) {
		return BookingCheck{
			CanBook: false,
			Reason:  fmt.Sprintf("lesson must be booked at least %d hours in advance", advanceHours),
		}, nil
	}

	return BookingCheck{CanBook: true}, nil
}

// IsSlotAvailable проверяет, что интервал [startTime, endTime) на указанную дату
// не пересекается ни с одним активным занятием студента
//
// Пересечение полуинтервалов: касание границ пересечением не считается
// (занятие до 12:00 и занятие с 12:00 совместимы)
func IsSlotAvailable(date time.Time, startTime, endTime types.TimeString, existing []*DrivingLesson) AvailabilityCheck {
	for _, lesson := range existing {
		if !lesson.IsActive() {
			continue
		}
		if !IsSameDay(lesson.LessonDate, date) {
			continue
		}
		if IntervalsOverlap(startTime, endTime, lesson.StartTime, lesson.EndTime) {
			return AvailabilityCheck{
				Available: false,
				Reason: fmt.Sprintf("overlaps existing lesson %s-%s",
					lesson.StartTime, lesson.EndTime),
			}
		}
	}

	return AvailabilityCheck{Available: true}
}

// CanCancelLesson определяет, является ли отмена поздней
// Отмена позже, чем за cutoffHours часов до начала занятия, считается поздней
func CanCancelLesson(date time.Time, startTime types.TimeString, now time.Time, cutoffHours int) (CancellationCheck, error) {
	lessonStart, err := startTime.ToTime(date)
	if err != nil {
		return CancellationCheck{}, err
	}

	cutoff := lessonStart.Add(-time.Duration(cutoffHours) * time.Hour)

	return CancellationCheck{
		Allowed: true,
		IsLate:  !now.Before(cutoff),
	}, nil
}

// ShouldDeductHour определяет, теряет ли студент оплаченный час при отмене
// Единственный источник истины для этого решения:
// поздняя отмена без уважительной причины и без предварительного одобрения - час сгорает
func ShouldDeductHour(date time.Time, startTime types.TimeString, now time.Time, cutoffHours int, isUrgent, isPreApproved bool) (bool, error) {
	check, err := CanCancelLesson(date, startTime, now, cutoffHours)
	if err != nil {
		return false, err
	}

	if !check.IsLate {
		return false, nil
	}

	if isUrgent || isPreApproved {
		return false, nil
	}

	return true, nil
}

// IntervalsOverlap проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
func IntervalsOverlap(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && aEnd.IsAfter(bStart)
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет компонент времени, оставляя только дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
