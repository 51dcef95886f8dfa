package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

var (
	monday   = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)
)

func window(day int, start, end string, available bool) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		AdvisorID:   1,
		DayOfWeek:   day,
		StartTime:   types.TimeString(start),
		EndTime:     types.TimeString(end),
		IsAvailable: available,
	}
}

func slotStarts(slots []domain.CandidateSlot) []string {
	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.Start.String()
	}
	return starts
}

func TestGenerateCandidateSlots_FixedStep(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		window(domain.DayMonday, "09:00", "11:00", true),
	}

	slots, err := generateCandidateSlots(windows, monday)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slotStarts(slots))
	assert.Equal(t, "09:30", slots[0].End.String())
}

func TestGenerateCandidateSlots_DropsPartialTail(t *testing.T) {
	// 09:00-10:15: хвост 10:00-10:15 короче 30 минут и не попадает в выдачу
	windows := []*domain.AvailabilityWindow{
		window(domain.DayMonday, "09:00", "10:15", true),
	}

	slots, err := generateCandidateSlots(windows, monday)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30"}, slotStarts(slots))
}

func TestGenerateCandidateSlots_WindowShorterThanSlot(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		window(domain.DayMonday, "09:00", "09:20", true),
	}

	slots, err := generateCandidateSlots(windows, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateCandidateSlots_WeekendIsEmptyNotError(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		window(domain.DayMonday, "09:00", "17:00", true),
	}

	for _, date := range []time.Time{saturday, sunday} {
		slots, err := generateCandidateSlots(windows, date)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestGenerateCandidateSlots_SkipsDisabledAndOtherDays(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		window(domain.DayMonday, "09:00", "10:00", false),   // отключено
		window(domain.DayTuesday, "09:00", "10:00", true),   // другой день
		window(domain.DayMonday, "14:00", "15:00", true),    // подходит
	}

	slots, err := generateCandidateSlots(windows, monday)
	require.NoError(t, err)

	assert.Equal(t, []string{"14:00", "14:30"}, slotStarts(slots))
}

func TestGenerateCandidateSlots_WindowEndingAtMidnight(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		window(domain.DayMonday, "23:00", "23:59", true),
	}

	slots, err := generateCandidateSlots(windows, monday)
	require.NoError(t, err)

	// 23:00-23:30 помещается, 23:30-00:00 выходит за границу суток
	assert.Equal(t, []string{"23:00"}, slotStarts(slots))
}

func TestDedupeByStart_OverlappingWindows(t *testing.T) {
	windows := []*domain.AvailabilityWindow{
		window(domain.DayMonday, "09:00", "11:00", true),
		window(domain.DayMonday, "10:00", "12:00", true),
	}

	slots, err := generateCandidateSlots(windows, monday)
	require.NoError(t, err)

	deduped := dedupeByStart(slots)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slotStarts(deduped))
}

func TestAnnotateSlots_BookingBlocksSlot(t *testing.T) {
	slots := []domain.CandidateSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
	}
	appointments := []*domain.Appointment{
		{StudentID: 42, StartTime: "09:00", Status: domain.StatusConfirmed},
	}

	annotated := annotateSlots(slots, appointments, 0)
	require.Len(t, annotated, 2)

	assert.True(t, annotated[0].IsBooked)
	assert.False(t, annotated[0].IsOwnBooking)
	assert.False(t, annotated[1].IsBooked)
}

func TestAnnotateSlots_StudentCancellationFreesSlot(t *testing.T) {
	actor := domain.ActorStudent
	slots := []domain.CandidateSlot{{Start: "09:00", End: "09:30"}}
	appointments := []*domain.Appointment{
		{StudentID: 42, StartTime: "09:00", Status: domain.StatusCancelled, CancelledBy: &actor},
	}

	annotated := annotateSlots(slots, appointments, 0)
	assert.False(t, annotated[0].IsBooked)
}

func TestAnnotateSlots_AdvisorCancellationKeepsSlotBlocked(t *testing.T) {
	actor := domain.ActorAdvisor
	slots := []domain.CandidateSlot{{Start: "09:00", End: "09:30"}}
	appointments := []*domain.Appointment{
		{StudentID: 42, StartTime: "09:00", Status: domain.StatusCancelled, CancelledBy: &actor},
	}

	annotated := annotateSlots(slots, appointments, 0)
	assert.True(t, annotated[0].IsBooked)
}

func TestAnnotateSlots_OwnBooking(t *testing.T) {
	slots := []domain.CandidateSlot{{Start: "09:00", End: "09:30"}}
	appointments := []*domain.Appointment{
		{StudentID: 42, StartTime: "09:00", Status: domain.StatusPending},
	}

	own := annotateSlots(slots, appointments, 42)
	assert.True(t, own[0].IsBooked)
	assert.True(t, own[0].IsOwnBooking)

	other := annotateSlots(slots, appointments, 7)
	assert.True(t, other[0].IsBooked)
	assert.False(t, other[0].IsOwnBooking)

	anonymous := annotateSlots(slots, appointments, 0)
	assert.True(t, anonymous[0].IsBooked)
	assert.False(t, anonymous[0].IsOwnBooking)
}

func TestAnnotateSlots_CompletedAppointmentBlocksSlot(t *testing.T) {
	slots := []domain.CandidateSlot{{Start: "09:00", End: "09:30"}}
	appointments := []*domain.Appointment{
		{StudentID: 42, StartTime: "09:00", Status: domain.StatusCompleted},
	}

	annotated := annotateSlots(slots, appointments, 0)
	assert.True(t, annotated[0].IsBooked)
}
