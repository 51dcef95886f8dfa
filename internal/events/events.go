package events

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
)

// EventType тип доменного события
type EventType string

const (
	EventAppointmentCreated       EventType = "APPOINTMENT_CREATED"
	EventAppointmentStatusChanged EventType = "APPOINTMENT_STATUS_CHANGED"
	EventAppointmentCancelled     EventType = "APPOINTMENT_CANCELLED"
)

// AppointmentEvent доменное событие изменения записи на консультацию.
// Сервисный слой публикует события в шину; транспорт доставки (push,
// уведомления) подписывается на шину и не знает о бизнес-логике.
type AppointmentEvent struct {
	Type        EventType
	Appointment *domain.Appointment
	// PreviousStatus заполняется при смене статуса и отмене
	PreviousStatus *domain.AppointmentStatus
	OccurredAt     time.Time
}
