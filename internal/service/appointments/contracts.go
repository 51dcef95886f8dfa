package appointments

import (
	"context"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/internal/events"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
)

// AppointmentRepository интерфейс репозитория записей на консультации
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByStudentID(ctx context.Context, studentID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByAdvisorWithFilter(ctx context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason string) error
}

// ProfileServiceClient интерфейс клиента ProfileService
type ProfileServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*profileservice.User, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(event events.AppointmentEvent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
