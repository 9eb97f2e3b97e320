package book_lesson

import (
	"errors"
	"net/http"

	"github.com/m04kA/ADS-SchedulingService/internal/api/handlers"
	"github.com/m04kA/ADS-SchedulingService/internal/api/middleware"
	bookLesson "github.com/m04kA/ADS-SchedulingService/internal/usecase/book_lesson"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNoActiveAssignment   = "у студента нет закрепленного инструктора по этой категории"
	msgSlotNotFound         = "слот доступности не найден"
	msgSlotAlreadyBooked    = "слот уже забронирован"
	msgSlotNotDated         = "слот-шаблон нельзя забронировать напрямую"
	msgWrongInstructor      = "слот принадлежит другому инструктору"
	msgLicenseMismatch      = "слот не поддерживает выбранную категорию курса"
	msgLessonOutsideSlot    = "интервал занятия выходит за пределы слота"
	msgTooLateToBook        = "слишком поздно для бронирования этого занятия"
	msgOverlappingLesson    = "занятие пересекается с другим занятием студента"
	msgInsufficientBalance  = "недостаточно минут на балансе вождения"
	msgInvalidInput         = "некорректные данные запроса"
	codeInsufficientBalance = "INSUFFICIENT_BALANCE"
)

type Handler struct {
	useCase BookLessonUseCase
	logger  Logger
}

func NewHandler(useCase BookLessonUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/lessons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /lessons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookLessonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lessons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /lessons - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookLesson.ErrNoActiveAssignment):
			h.logger.Warn("POST /lessons - No active assignment: student_id=%d, course_type=%s", userID, req.CourseType)
			handlers.RespondNotFound(w, msgNoActiveAssignment)

		case errors.Is(err, bookLesson.ErrSlotNotFound):
			h.logger.Warn("POST /lessons - Slot not found: student_id=%d, slot_id=%d", userID, req.AvailabilityID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookLesson.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /lessons - Slot already booked: student_id=%d, slot_id=%d", userID, req.AvailabilityID)
			handlers.RespondError(w, http.StatusConflict, msgSlotAlreadyBooked)

		case errors.Is(err, bookLesson.ErrSlotNotDated):
			h.logger.Warn("POST /lessons - Slot is a template: student_id=%d, slot_id=%d", userID, req.AvailabilityID)
			handlers.RespondBadRequest(w, msgSlotNotDated)

		case errors.Is(err, bookLesson.ErrWrongInstructor):
			h.logger.Warn("POST /lessons - Wrong instructor: student_id=%d, slot_id=%d", userID, req.AvailabilityID)
			handlers.RespondForbidden(w, msgWrongInstructor)

		case errors.Is(err, bookLesson.ErrLicenseMismatch):
			h.logger.Warn("POST /lessons - License mismatch: student_id=%d, slot_id=%d, course_type=%s",
				userID, req.AvailabilityID, req.CourseType)
			handlers.RespondBadRequest(w, msgLicenseMismatch)

		case errors.Is(err, bookLesson.ErrLessonOutsideSlot):
			h.logger.Warn("POST /lessons - Lesson outside slot: student_id=%d, slot_id=%d", userID, req.AvailabilityID)
			handlers.RespondBadRequest(w, msgLessonOutsideSlot)

		case errors.Is(err, bookLesson.ErrTooLateToBook):
			h.logger.Warn("POST /lessons - Too late to book: student_id=%d, slot_id=%d", userID, req.AvailabilityID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, bookLesson.ErrOverlappingLesson):
			h.logger.Warn("POST /lessons - Overlapping lesson: student_id=%d, date=%s", userID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgOverlappingLesson)

		case errors.Is(err, bookLesson.ErrInsufficientBalance):
			h.logger.Warn("POST /lessons - Insufficient balance: student_id=%d", userID)
			handlers.RespondErrorWithCode(w, http.StatusUnprocessableEntity, codeInsufficientBalance, msgInsufficientBalance)

		case errors.Is(err, bookLesson.ErrInvalidInput):
			h.logger.Warn("POST /lessons - Invalid input: student_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /lessons - Failed to book lesson: student_id=%d, slot_id=%d, error=%v",
				userID, req.AvailabilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /lessons - Lesson booked successfully: lesson_id=%d, student_id=%d, instructor_id=%d",
		result.ID, result.StudentID, result.InstructorID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
