package toggle_availability

import (
	"context"

	"github.com/m04kA/UCA-AdvisoryService/internal/service/availability/models"
)

type AvailabilityService interface {
	Toggle(ctx context.Context, windowID int64, req *models.ToggleWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
