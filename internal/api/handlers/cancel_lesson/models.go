package cancel_lesson

import (
	"github.com/m04kA/ADS-SchedulingService/internal/service/lessons/models"
)

// CancelLessonRequest HTTP request model
type CancelLessonRequest struct {
	Reason        *string `json:"reason,omitempty"`
	IsUrgent      bool    `json:"isUrgent,omitempty"`
	IsPreApproved bool    `json:"isPreApproved,omitempty"`
}

// CancelLessonResponse HTTP response model
// Warning заполняется при поздней отмене, когда оплаченный час сгорел
type CancelLessonResponse struct {
	Lesson       *models.LessonResponse `json:"lesson"`
	HourDeducted bool                   `json:"hourDeducted"`
	Warning      *string                `json:"warning,omitempty"`
}
