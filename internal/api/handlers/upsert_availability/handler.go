package upsert_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCA-AdvisoryService/internal/api/handlers"
	"github.com/m04kA/UCA-AdvisoryService/internal/api/middleware"
	"github.com/m04kA/UCA-AdvisoryService/internal/service/availability"
)

const (
	msgInvalidAdvisorID   = "некорректный ID советника"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotAnAdvisor       = "пользователь не является советником"
	msgUserNotFound       = "пользователь не найден"
	msgInvalidTimeRange   = "время начала должно быть раньше времени конца"
	msgInvalidDayOfWeek   = "день недели должен быть от 0 (понедельник) до 4 (пятница)"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/advisors/{advisorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	advisorIDStr := vars["advisorId"]

	advisorID, err := strconv.ParseInt(advisorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /advisors/{id}/availability - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /advisors/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpsertWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /advisors/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(advisorID)
	if err != nil {
		h.logger.Warn("POST /advisors/{id}/availability - Failed to parse times: advisor_id=%d, error=%v",
			advisorID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.Upsert(r.Context(), userID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /advisors/{id}/availability - Access denied: advisor_id=%d, user_id=%d",
				advisorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrNotAnAdvisor):
			h.logger.Warn("POST /advisors/{id}/availability - Not an advisor: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotAnAdvisor)

		case errors.Is(err, availability.ErrUserNotFound):
			h.logger.Warn("POST /advisors/{id}/availability - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, availability.ErrInvalidTimeRange):
			h.logger.Warn("POST /advisors/{id}/availability - Invalid time range: advisor_id=%d", advisorID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, availability.ErrInvalidDayOfWeek):
			h.logger.Warn("POST /advisors/{id}/availability - Invalid day of week: advisor_id=%d, day=%d",
				advisorID, req.DayOfWeek)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /advisors/{id}/availability - Invalid input: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /advisors/{id}/availability - Failed to upsert window: advisor_id=%d, error=%v",
				advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /advisors/{id}/availability - Window upserted successfully: window_id=%d, advisor_id=%d",
		result.ID, advisorID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
