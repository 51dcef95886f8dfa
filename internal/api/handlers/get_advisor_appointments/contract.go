package get_advisor_appointments

import (
	"context"

	"github.com/m04kA/UCA-AdvisoryService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetAdvisorAppointments(ctx context.Context, req *models.GetAdvisorAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
