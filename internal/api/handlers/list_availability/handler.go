package list_availability

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/UCA-AdvisoryService/internal/api/handlers"
)

const (
	msgInvalidAdvisorID = "некорректный ID советника"
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

// Handle GET /api/v1/advisors/{advisorId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	advisorIDStr := vars["advisorId"]

	advisorID, err := strconv.ParseInt(advisorIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /advisors/{id}/availability - Invalid advisor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdvisorID)
		return
	}

	result, err := h.service.List(r.Context(), advisorID)
	if err != nil {
		h.logger.Error("GET /advisors/{id}/availability - Failed to get windows: advisor_id=%d, error=%v",
			advisorID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /advisors/{id}/availability - Windows retrieved successfully: advisor_id=%d, count=%d",
		advisorID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
