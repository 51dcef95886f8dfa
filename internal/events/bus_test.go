package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
)

func TestBus_PublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var first, second []EventType
	bus.Subscribe(func(e AppointmentEvent) { first = append(first, e.Type) })
	bus.Subscribe(func(e AppointmentEvent) { second = append(second, e.Type) })

	bus.Publish(AppointmentEvent{Type: EventAppointmentCreated, Appointment: &domain.Appointment{ID: 1}})

	assert.Equal(t, []EventType{EventAppointmentCreated}, first)
	assert.Equal(t, []EventType{EventAppointmentCreated}, second)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	var got int
	unsubscribe := bus.Subscribe(func(AppointmentEvent) { got++ })

	bus.Publish(AppointmentEvent{Type: EventAppointmentCreated, Appointment: &domain.Appointment{ID: 1}})
	unsubscribe()
	bus.Publish(AppointmentEvent{Type: EventAppointmentCancelled, Appointment: &domain.Appointment{ID: 1}})

	assert.Equal(t, 1, got)
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Publish(AppointmentEvent{Type: EventAppointmentStatusChanged, Appointment: &domain.Appointment{ID: 1}})
	})
}
