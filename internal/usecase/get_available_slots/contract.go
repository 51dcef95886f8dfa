package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/internal/integrations/profileservice"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	// GetByAdvisorAndDay получает окна советника на день недели (0 = понедельник)
	GetByAdvisorAndDay(ctx context.Context, advisorID int64, dayOfWeek int) ([]*domain.AvailabilityWindow, error)
}

// AppointmentRepository интерфейс репозитория записей на консультации
type AppointmentRepository interface {
	// GetByAdvisorWithFilter получает записи советника на дату,
	// включая отменённые (нужны для определения занятости слота)
	GetByAdvisorWithFilter(ctx context.Context, filter domain.AdvisorAppointmentsFilter) ([]*domain.Appointment, error)
}

// ProfileServiceClient интерфейс клиента ProfileService
type ProfileServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*profileservice.User, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
