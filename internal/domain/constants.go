package domain

// Scheduling constants
const (
	// SlotDurationMinutes fixed length of every advising slot
	SlotDurationMinutes = 30

	// MaxBookingHorizonDays how far ahead a student can book (today .. today+30)
	MaxBookingHorizonDays = 30
)

// Availability day indexes (weekends are not modeled)
const (
	DayMonday = iota
	DayTuesday
	DayWednesday
	DayThursday
	DayFriday
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие дневной лимит студента
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusCompleted,
}
