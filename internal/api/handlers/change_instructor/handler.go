package change_instructor

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/service/assignments"
	"github.com/m04kA/ADS-SchedulingService/internal/service/assignments/models"
)

const (
	msgInvalidStudentID   = "некорректный ID студента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgAssignmentNotFound = "у студента нет закрепленного инструктора по этой категории"
	msgSameInstructor     = "новый инструктор совпадает с текущим"
	msgInvalidInput       = "некорректные данные запроса"
)

// ChangeInstructorRequest HTTP request model
type ChangeInstructorRequest struct {
	NewInstructorID int64   `json:"newInstructorId"`
	CourseType      string  `json:"courseType"`
	Reason          *string `json:"reason,omitempty"`
}

type Handler struct {
	service AssignmentService
	logger  Logger
}

func NewHandler(service AssignmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/students/{studentId}/instructor
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studentIDStr := vars["studentId"]

	studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /students/{id}/instructor - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /students/{id}/instructor - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ChangeInstructorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /students/{id}/instructor - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	assignment, err := h.service.ChangeInstructor(r.Context(), &models.ChangeInstructorRequest{
		StudentID:       studentID,
		UserID:          userID,
		NewInstructorID: req.NewInstructorID,
		CourseType:      req.CourseType,
		Reason:          req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignments.ErrAccessDenied):
			h.logger.Warn("PUT /students/{id}/instructor - Access denied: student_id=%d, user_id=%d", studentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, assignments.ErrAssignmentNotFound):
			h.logger.Warn("PUT /students/{id}/instructor - Assignment not found: student_id=%d, course_type=%s",
				studentID, req.CourseType)
			handlers.RespondNotFound(w, msgAssignmentNotFound)

		case errors.Is(err, assignments.ErrSameInstructor):
			h.logger.Warn("PUT /students/{id}/instructor - Same instructor: student_id=%d, instructor_id=%d",
				studentID, req.NewInstructorID)
			handlers.RespondError(w, http.StatusConflict, msgSameInstructor)

		case errors.Is(err, assignments.ErrInvalidInput):
			h.logger.Warn("PUT /students/{id}/instructor - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /students/{id}/instructor - Failed to change instructor: student_id=%d, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /students/{id}/instructor - Instructor changed: student_id=%d, instructor_id=%d",
		studentID, assignment.InstructorID)
	handlers.RespondJSON(w, http.StatusOK, assignment)
}
