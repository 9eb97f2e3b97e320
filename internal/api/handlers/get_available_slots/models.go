package get_available_slots

import (
	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	getAvailableSlots "github.com/m04kA/ADS-SchedulingService/internal/usecase/get_available_slots"
)

// SlotResponse доступный для бронирования слот
type SlotResponse struct {
	ID           int64    `json:"id"`
	InstructorID int64    `json:"instructorId"`
	Date         string   `json:"date"`
	StartTime    string   `json:"startTime"`
	EndTime      string   `json:"endTime"`
	LicenseTypes []string `json:"licenseTypes"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	InstructorID int64          `json:"instructorId"`
	Slots        []SlotResponse `json:"slots"`
	Total        int            `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			ID:           s.ID,
			InstructorID: s.InstructorID,
			Date:         s.Date.Format(domain.DateFormat),
			StartTime:    s.StartTime.String(),
			EndTime:      s.EndTime.String(),
			LicenseTypes: s.LicenseTypes,
		})
	}

	return &AvailableSlotsResponse{
		InstructorID: resp.InstructorID,
		Slots:        slots,
		Total:        len(slots),
	}
}
