package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/ADS-SchedulingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidStudentID   = "некорректный ID студента"
	msgMissingCourseType  = "не указана категория курса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNoActiveAssignment = "у студента нет закрепленного инструктора по этой категории"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/{studentId}/available-slots?courseType=B
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studentIDStr := vars["studentId"]

	studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{id}/available-slots - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	courseType := r.URL.Query().Get("courseType")
	if courseType == "" {
		h.logger.Warn("GET /students/{id}/available-slots - Missing courseType: student_id=%d", studentID)
		handlers.RespondBadRequest(w, msgMissingCourseType)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{id}/available-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Слоты своего инструктора видит только сам студент
	if userID != studentID {
		h.logger.Warn("GET /students/{id}/available-slots - Access denied: student_id=%d, user_id=%d",
			studentID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		StudentID:  studentID,
		CourseType: courseType,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrNoActiveAssignment):
			h.logger.Warn("GET /students/{id}/available-slots - No active assignment: student_id=%d, course_type=%s",
				studentID, courseType)
			handlers.RespondNotFound(w, msgNoActiveAssignment)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/available-slots - Invalid input: student_id=%d, error=%v", studentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /students/{id}/available-slots - Failed to get slots: student_id=%d, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/available-slots - Slots retrieved: student_id=%d, instructor_id=%d, total=%d",
		studentID, result.InstructorID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
