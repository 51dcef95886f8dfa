package domain

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

// AppointmentStatus represents the status of an advising appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// CancelActor identifies who cancelled an appointment
type CancelActor string

const (
	ActorStudent CancelActor = "student"
	ActorAdvisor CancelActor = "advisor"
)

// Appointment represents a booked advising session between a student and an advisor
type Appointment struct {
	ID              int64
	StudentID       int64
	AdvisorID       int64
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          AppointmentStatus
	Notes           *string

	// Cancellation metadata. Each reason field is written only by its own actor.
	CancelledBy               *CancelActor
	StudentCancellationReason *string
	AdvisorCancellationReason *string
	CancelledAt               *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies the student's daily cap
// (pending or confirmed, not yet cancelled or completed)
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status.IsTerminal()
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// BlocksSlot reports whether this appointment keeps its time slot occupied.
// A slot stays blocked unless the appointment was cancelled by the student:
// an advisor-side cancellation does not reopen the slot for other students.
func (a *Appointment) BlocksSlot() bool {
	if a.Status != StatusCancelled {
		return true
	}
	return a.CancelledBy != nil && *a.CancelledBy == ActorAdvisor
}

// IsTerminal returns true for statuses that permit no further transitions
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsValid returns true for a known appointment status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the status machine allows moving from one
// status to another:
//
//	pending   -> confirmed | cancelled
//	confirmed -> completed | cancelled
//	cancelled -> (terminal)
//	completed -> (terminal)
func CanTransition(from, to AppointmentStatus) bool {
	if from.IsTerminal() {
		return false
	}

	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// AdvisorAppointmentsFilter filters an advisor's appointment list
type AdvisorAppointmentsFilter struct {
	AdvisorID       int64
	StartDate       *time.Time // период: начало (опционально)
	EndDate         *time.Time // период: конец (опционально)
	Status          *AppointmentStatus
	IncludeInactive bool // включать ли отменённые и завершённые
}
