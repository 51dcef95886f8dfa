package domain

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

// AvailabilityWindow represents a recurring weekly interval during which an
// advisor accepts bookings. Owned and mutated exclusively by its advisor.
type AvailabilityWindow struct {
	ID          int64
	AdvisorID   int64
	DayOfWeek   int // 0 = Monday ... 4 = Friday; weekends are not modeled
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MatchesDate returns true if the window applies to the given calendar date
func (w *AvailabilityWindow) MatchesDate(date time.Time) bool {
	return w.DayOfWeek == WeekdayIndex(date)
}

// WeekdayIndex maps a calendar date to the availability day index:
// 0 = Monday ... 4 = Friday, 5 = Saturday, 6 = Sunday.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// IsBusinessDay returns true for Monday through Friday
func IsBusinessDay(date time.Time) bool {
	return WeekdayIndex(date) <= DayFriday
}
