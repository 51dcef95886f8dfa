package upsert_availability

import (
	"context"

	"github.com/m04kA/UCA-AdvisoryService/internal/service/availability/models"
)

type AvailabilityService interface {
	Upsert(ctx context.Context, userID int64, req *models.UpsertWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
