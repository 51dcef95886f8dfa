package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/UCA-AdvisoryService/internal/api/handlers"
	"github.com/m04kA/UCA-AdvisoryService/internal/api/middleware"
	createAppointment "github.com/m04kA/UCA-AdvisoryService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgAdvisorNotFound    = "советник не найден"
	msgStudentNotFound    = "студент не найден"
	msgNotAnAdvisor       = "пользователь не является советником"
	msgNotAStudent        = "записаться на консультацию может только студент"
	msgInvalidDateValue   = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotTaken          = "выбранный слот уже занят"
	msgDailyCapExceeded   = "на эту дату уже есть активная запись"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Студентом считается аутентифицированный пользователь
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if req.AppointmentDate != "" && len(req.StartTime) > 0 {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: student_id=%d, advisor_id=%d", userID, req.AdvisorID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrDailyCapExceeded):
			h.logger.Warn("POST /appointments - Daily cap exceeded: student_id=%d, date=%s", userID, req.AppointmentDate)
			handlers.RespondError(w, http.StatusConflict, msgDailyCapExceeded)

		case errors.Is(err, createAppointment.ErrAdvisorNotFound):
			h.logger.Warn("POST /appointments - Advisor not found: advisor_id=%d", req.AdvisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, createAppointment.ErrStudentNotFound):
			h.logger.Warn("POST /appointments - Student not found: student_id=%d", userID)
			handlers.RespondNotFound(w, msgStudentNotFound)

		case errors.Is(err, createAppointment.ErrNotAnAdvisor):
			h.logger.Warn("POST /appointments - Not an advisor: advisor_id=%d", req.AdvisorID)
			handlers.RespondBadRequest(w, msgNotAnAdvisor)

		case errors.Is(err, createAppointment.ErrNotAStudent):
			h.logger.Warn("POST /appointments - Not a student: student_id=%d", userID)
			handlers.RespondForbidden(w, msgNotAStudent)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: student_id=%d, date=%s", userID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidDateValue)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: student_id=%d, date=%s", userID, req.AppointmentDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: student_id=%d, advisor_id=%d, time=%s",
				userID, req.AdvisorID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: student_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: student_id=%d, advisor_id=%d, error=%v",
				userID, req.AdvisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, student_id=%d, advisor_id=%d",
		result.ID, userID, req.AdvisorID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
