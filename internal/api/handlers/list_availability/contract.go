package list_availability

import (
	"context"

	"github.com/m04kA/UCA-AdvisoryService/internal/service/availability/models"
)

type AvailabilityService interface {
	List(ctx context.Context, advisorID int64) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
