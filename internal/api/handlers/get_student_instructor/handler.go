package get_student_instructor

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
	msgInvalidStudentID     = "некорректный ID студента"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "доступ запрещен"
	msgAssignmentNotFound   = "у студента нет закрепленного инструктора по этой категории"
	msgInvalidInput         = "некорректные данные запроса"
	defaultCourseTypeFilter = "B"
)

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

// Handle GET /api/v1/students/{studentId}/instructor?courseType=B
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studentIDStr := vars["studentId"]

	studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{id}/instructor - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{id}/instructor - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	courseType := r.URL.Query().Get("courseType")
	if courseType == "" {
		courseType = defaultCourseTypeFilter
	}

	assignment, err := h.service.GetStudentInstructor(r.Context(), &models.GetAssignmentRequest{
		StudentID:  studentID,
		UserID:     userID,
		CourseType: courseType,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignments.ErrAccessDenied):
			h.logger.Warn("GET /students/{id}/instructor - Access denied: student_id=%d, user_id=%d", studentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, assignments.ErrAssignmentNotFound):
			h.logger.Warn("GET /students/{id}/instructor - Assignment not found: student_id=%d, course_type=%s",
				studentID, courseType)
			handlers.RespondNotFound(w, msgAssignmentNotFound)

		case errors.Is(err, assignments.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/instructor - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /students/{id}/instructor - Failed to get assignment: student_id=%d, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/instructor - Assignment retrieved: student_id=%d, instructor_id=%d",
		studentID, assignment.InstructorID)
	handlers.RespondJSON(w, http.StatusOK, assignment)
}
