package models

import (
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

// CreateSlotRequest запрос создания слота доступности инструктором
//
// Разовый слот: задан Date, поля повторения пустые.
// Повторяющийся шаблон: Date отсутствует, заданы RecurrencePattern и DaysOfWeek
type CreateSlotRequest struct {
	InstructorID int64

	Date         *string  `json:"date,omitempty"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	LicenseTypes []string `json:"licenseTypes"`

	IsRecurring       bool    `json:"isRecurring"`
	RecurrencePattern *string `json:"recurrencePattern,omitempty"`
	DaysOfWeek        []int64 `json:"daysOfWeek,omitempty"`
	RecurrenceEndDate *string `json:"recurrenceEndDate,omitempty"`
}

// GetInstructorSlotsRequest запрос календаря слотов инструктора
type GetInstructorSlotsRequest struct {
	InstructorID int64
	UserID       int64
	DateFrom     *string
	DateTo       *string
	OnlyUnbooked bool
}

// SlotResponse слот доступности в ответе API
type SlotResponse struct {
	ID           int64    `json:"id"`
	InstructorID int64    `json:"instructorId"`
	Date         *string  `json:"date,omitempty"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	IsBooked     bool     `json:"isBooked"`
	LicenseTypes []string `json:"licenseTypes"`

	IsRecurring       bool    `json:"isRecurring"`
	RecurrencePattern *string `json:"recurrencePattern,omitempty"`
	DaysOfWeek        []int64 `json:"daysOfWeek,omitempty"`
	RecurrenceEndDate *string `json:"recurrenceEndDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse список слотов доступности
type SlotListResponse struct {
	Slots []*SlotResponse `json:"slots"`
	Total int             `json:"total"`
}

// FromDomainSlot конвертирует доменный слот в DTO ответа
func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	return &SlotResponse{
		ID:                s.ID,
		InstructorID:      s.InstructorID,
		Date:              formatDatePtr(s.SlotDate),
		StartTime:         s.StartTime.String(),
		EndTime:           s.EndTime.String(),
		IsBooked:          s.IsBooked,
		LicenseTypes:      s.LicenseTypes,
		IsRecurring:       s.IsRecurring,
		RecurrencePattern: s.RecurrencePattern,
		DaysOfWeek:        s.DaysOfWeek,
		RecurrenceEndDate: formatDatePtr(s.RecurrenceEndDate),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список доменных слотов в DTO ответа
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	result := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, FromDomainSlot(s))
	}
	return &SlotListResponse{
		Slots: result,
		Total: len(result),
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(domain.DateFormat)
	return &formatted
}
