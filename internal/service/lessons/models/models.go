package models

import (
	"errors"
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid lesson status")
)

// Request модели

// CancelLessonRequest запрос на отмену занятия студентом
type CancelLessonRequest struct {
	UserID int64
	Reason *string

	// IsUrgent экстренная причина отмены (болезнь и т.п.) - час не сгорает
	IsUrgent bool

	// IsPreApproved отмена заранее согласована с автошколой - час не сгорает
	IsPreApproved bool
}

// RejectLessonRequest запрос на отказ инструктора от занятия
type RejectLessonRequest struct {
	InstructorID int64
	Reason       *string
}

// CompleteLessonRequest запрос на завершение занятия инструктором
type CompleteLessonRequest struct {
	InstructorID int64
	RecapNotes   *string
}

// GetStudentLessonsRequest запрос истории занятий студента
type GetStudentLessonsRequest struct {
	StudentID int64
	UserID    int64
	Status    *string
}

// Response модели

// LessonResponse ответ с данными занятия
type LessonResponse struct {
	ID             int64  `json:"id"`
	StudentID      int64  `json:"studentId"`
	InstructorID   int64  `json:"instructorId"`
	AvailabilityID *int64 `json:"availabilityId,omitempty"`
	LessonDate     string `json:"lessonDate"` // "2025-10-15"
	StartTime      string `json:"startTime"`  // "11:00"
	EndTime        string `json:"endTime"`    // "12:00"
	DurationHours  int    `json:"durationHours"`
	Status         string `json:"status"`

	StudentConfirmed    bool    `json:"studentConfirmed"`
	InstructorConfirmed bool    `json:"instructorConfirmed"`
	ConfirmedAt         *string `json:"confirmedAt,omitempty"` // ISO 8601

	IsDeducted         bool    `json:"isDeducted"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	CompletedAt *string `json:"completedAt,omitempty"` // ISO 8601
	RecapNotes  *string `json:"recapNotes,omitempty"`

	MeetingPoint *string `json:"meetingPoint,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LessonListResponse ответ со списком занятий
type LessonListResponse struct {
	Lessons []LessonResponse `json:"lessons"`
	Total   int              `json:"total"`
}

// CancelLessonResult результат отмены занятия
type CancelLessonResult struct {
	Lesson *LessonResponse
	// HourDeducted true, если отмена была поздней и баланс не возвращён
	HourDeducted bool
}

// Методы конвертации

// FromDomainLesson конвертирует domain модель в DTO
func FromDomainLesson(l *domain.DrivingLesson) *LessonResponse {
	if l == nil {
		return nil
	}

	resp := &LessonResponse{
		ID:                  l.ID,
		StudentID:           l.StudentID,
		InstructorID:        l.InstructorID,
		AvailabilityID:      l.AvailabilityID,
		LessonDate:          l.LessonDate.Format(domain.DateFormat),
		StartTime:           l.StartTime.String(),
		EndTime:             l.EndTime.String(),
		DurationHours:       l.DurationHours,
		Status:              string(l.Status),
		StudentConfirmed:    l.StudentConfirmed,
		InstructorConfirmed: l.InstructorConfirmed,
		IsDeducted:          l.IsDeducted,
		CancelledBy:         l.CancelledBy,
		CancellationReason:  l.CancellationReason,
		RecapNotes:          l.RecapNotes,
		MeetingPoint:        l.MeetingPoint,
		Notes:               l.Notes,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}

	resp.ConfirmedAt = formatTimePtr(l.ConfirmedAt)
	resp.CancelledAt = formatTimePtr(l.CancelledAt)
	resp.CompletedAt = formatTimePtr(l.CompletedAt)

	return resp
}

// FromDomainLessonList конвертирует список domain моделей в DTO
func FromDomainLessonList(lessons []*domain.DrivingLesson) *LessonListResponse {
	resp := &LessonListResponse{
		Lessons: make([]LessonResponse, 0, len(lessons)),
	}

	for _, lesson := range lessons {
		if lessonResp := FromDomainLesson(lesson); lessonResp != nil {
			resp.Lessons = append(resp.Lessons, *lessonResp)
		}
	}
	resp.Total = len(resp.Lessons)

	return resp
}

// ToDomainLessonStatus конвертирует строку в domain.LessonStatus с валидацией
func ToDomainLessonStatus(status string) (domain.LessonStatus, error) {
	s := domain.LessonStatus(status)

	validStatuses := []domain.LessonStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// formatTimePtr форматирует опциональное время в ISO 8601
func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
