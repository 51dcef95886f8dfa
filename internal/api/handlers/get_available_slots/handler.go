package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCA-AdvisoryService/internal/api/handlers"
	"github.com/m04kA/UCA-AdvisoryService/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/UCA-AdvisoryService/internal/usecase/get_available_slots"
)

const (
	msgInvalidAdvisorID = "некорректный ID советника"
	msgMissingDate      = "отсутствует параметр date"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAdvisorNotFound  = "советник не найден"
	msgNotAnAdvisor     = "пользователь не является советником"
	msgInvalidDateValue = "некорректная дата: дата в прошлом"
	msgDateTooFar       = "дата слишком далеко в будущем"
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

// Handle GET /api/v1/advisors/{advisorId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	advisorIDStr := vars["advisorId"]

	advisorID, err := strconv.ParseInt(advisorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/available-slots - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /advisors/{id}/available-slots - Missing date parameter: advisor_id=%d", advisorID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Просмотр слотов доступен и без аутентификации: без userID
	// собственные записи просто не помечаются
	userID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(advisorID, userID, dateStr)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/available-slots - Invalid date: advisor_id=%d, date=%s", advisorID, dateStr)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrAdvisorNotFound):
			h.logger.Warn("GET /advisors/{id}/available-slots - Advisor not found: advisor_id=%d", advisorID)
			handlers.RespondNotFound(w, msgAdvisorNotFound)

		case errors.Is(err, getAvailableSlots.ErrNotAnAdvisor):
			h.logger.Warn("GET /advisors/{id}/available-slots - Not an advisor: advisor_id=%d", advisorID)
			handlers.RespondBadRequest(w, msgNotAnAdvisor)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /advisors/{id}/available-slots - Invalid date: advisor_id=%d, date=%s", advisorID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDateValue)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /advisors/{id}/available-slots - Date too far in future: advisor_id=%d, date=%s", advisorID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /advisors/{id}/available-slots - Invalid input: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondBadRequest(w, msgInvalidAdvisorID)

		default:
			h.logger.Error("GET /advisors/{id}/available-slots - Failed to get slots: advisor_id=%d, error=%v", advisorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /advisors/{id}/available-slots - Slots retrieved successfully: advisor_id=%d, date=%s, count=%d",
		advisorID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
