package get_student_appointments

import (
	"context"

	"github.com/m04kA/UCA-AdvisoryService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetStudentAppointments(ctx context.Context, req *models.GetStudentAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
