package get_advisor_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCA-AdvisoryService/internal/api/handlers"
	"github.com/m04kA/UCA-AdvisoryService/internal/api/middleware"
	"github.com/m04kA/UCA-AdvisoryService/internal/service/appointments"
)

const (
	msgInvalidAdvisorID = "некорректный ID советника"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidParams    = "некорректные параметры запроса"
	msgForbidden        = "доступ запрещен"
	msgUserNotFound     = "пользователь не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/advisors/{advisorId}/appointments
// Query params: date, startDate, endDate, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	advisorIDStr := vars["advisorId"]

	advisorID, err := strconv.ParseInt(advisorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/appointments - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /advisors/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		advisorID,
		userID,
		query.Get("date"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("status"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис проверит, что советник запрашивает собственное расписание
	result, err := h.service.GetAdvisorAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /advisors/{id}/appointments - Access denied: advisor_id=%d, user_id=%d",
				advisorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrUserNotFound):
			h.logger.Warn("GET /advisors/{id}/appointments - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /advisors/{id}/appointments - Invalid parameters: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /advisors/{id}/appointments - Failed to get appointments: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /advisors/{id}/appointments - Appointments retrieved successfully: advisor_id=%d, count=%d",
		advisorID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
