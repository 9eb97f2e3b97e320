package book_lesson

import (
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
	bookLesson "github.com/m04kA/ADS-SchedulingService/internal/usecase/book_lesson"
	"github.com/m04kA/ADS-SchedulingService/pkg/types"
)

// BookLessonRequest HTTP request model
type BookLessonRequest struct {
	CourseType     string  `json:"courseType"`     // "B"
	AvailabilityID int64   `json:"availabilityId"` // ID слота доступности
	Date           string  `json:"date"`           // "2025-10-15"
	StartTime      string  `json:"startTime"`      // "11:00"
	EndTime        string  `json:"endTime"`        // "12:00"
	DurationHours  int     `json:"durationHours"`
	MeetingPoint   *string `json:"meetingPoint,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// LessonResponse HTTP response model
type LessonResponse struct {
	ID             int64  `json:"id"`
	StudentID      int64  `json:"studentId"`
	InstructorID   int64  `json:"instructorId"`
	AvailabilityID *int64 `json:"availabilityId,omitempty"`
	Date           string `json:"date"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	DurationHours  int    `json:"durationHours"`
	Status         string `json:"status"`

	StudentConfirmed    bool `json:"studentConfirmed"`
	InstructorConfirmed bool `json:"instructorConfirmed"`

	MeetingPoint *string `json:"meetingPoint,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	// BalanceMinutes остаток баланса студента после списания
	BalanceMinutes int `json:"balanceMinutes"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookLessonRequest) ToUseCaseRequest(studentID int64) (*bookLesson.Request, error) {
	lessonDate, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &bookLesson.Request{
		StudentID:      studentID,
		CourseType:     r.CourseType,
		AvailabilityID: r.AvailabilityID,
		Date:           lessonDate,
		StartTime:      startTime,
		EndTime:        endTime,
		DurationHours:  r.DurationHours,
		MeetingPoint:   r.MeetingPoint,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookLesson.Response) *LessonResponse {
	return &LessonResponse{
		ID:                  resp.ID,
		StudentID:           resp.StudentID,
		InstructorID:        resp.InstructorID,
		AvailabilityID:      resp.AvailabilityID,
		Date:                resp.LessonDate.Format(domain.DateFormat),
		StartTime:           resp.StartTime.String(),
		EndTime:             resp.EndTime.String(),
		DurationHours:       resp.DurationHours,
		Status:              resp.Status,
		StudentConfirmed:    resp.StudentConfirmed,
		InstructorConfirmed: resp.InstructorConfirmed,
		MeetingPoint:        resp.MeetingPoint,
		Notes:               resp.Notes,
		BalanceMinutes:      resp.BalanceMinutes,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
