package models

import (
	"time"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

// GetAssignmentRequest запрос активного закрепления студента
type GetAssignmentRequest struct {
	StudentID  int64
	UserID     int64
	CourseType string
}

// ChangeInstructorRequest запрос смены инструктора
type ChangeInstructorRequest struct {
	StudentID       int64
	UserID          int64
	NewInstructorID int64
	CourseType      string
	Reason          *string
}

// AssignmentResponse закрепление инструктора в ответе API
type AssignmentResponse struct {
	ID           int64     `json:"id"`
	StudentID    int64     `json:"studentId"`
	InstructorID int64     `json:"instructorId"`
	CourseType   string    `json:"courseType"`
	IsActive     bool      `json:"isActive"`
	Reason       *string   `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FromDomainAssignment конвертирует доменное закрепление в DTO ответа
func FromDomainAssignment(a *domain.InstructorAssignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:           a.ID,
		StudentID:    a.StudentID,
		InstructorID: a.InstructorID,
		CourseType:   a.CourseType,
		IsActive:     a.IsActive,
		Reason:       a.Reason,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
