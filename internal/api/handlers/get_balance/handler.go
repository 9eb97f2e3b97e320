package get_balance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/ADS-SchedulingService/internal/service/students"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgStudentNotFound  = "студент не найден"
)

type Handler struct {
	service StudentService
	logger  Logger
}

func NewHandler(service StudentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/{studentId}/balance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studentIDStr := vars["studentId"]

	studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{id}/balance - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{id}/balance - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), studentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, students.ErrAccessDenied):
			h.logger.Warn("GET /students/{id}/balance - Access denied: student_id=%d, user_id=%d", studentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, students.ErrStudentNotFound):
			h.logger.Warn("GET /students/{id}/balance - Student not found: student_id=%d", studentID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		default:
			h.logger.Error("GET /students/{id}/balance - Failed to get balance: student_id=%d, error=%v", studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/balance - Balance retrieved: student_id=%d, minutes=%d",
		studentID, balance.BalanceMinutes)
	handlers.RespondJSON(w, http.StatusOK, balance)
}
