package create_appointment

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

// findCandidateSlot ищет слот с запрошенным началом среди окон доступности
// советника на дату. Возвращает nil, если запрошенное время не совпадает
// ни с одним 30-минутным шагом внутри включённого окна.
func findCandidateSlot(windows []*domain.AvailabilityWindow, date time.Time, start types.TimeString) *domain.CandidateSlot {
	if !domain.IsBusinessDay(date) {
		return nil
	}

	dayOfWeek := domain.WeekdayIndex(date)

	for _, window := range windows {
		if window.DayOfWeek != dayOfWeek || !window.IsAvailable {
			continue
		}

		current := window.StartTime
		for current.IsBefore(window.EndTime) {
			slotEnd, err := current.AddMinutes(domain.SlotDurationMinutes)
			if err != nil {
				break
			}
			if slotEnd.IsAfter(window.EndTime) {
				break
			}

			if current.Equal(start) {
				return &domain.CandidateSlot{Start: current, End: slotEnd}
			}

			current = slotEnd
		}
	}

	return nil
}

// slotBlocked проверяет, занят ли слот существующей записью.
// Блокируют слот записи с совпадающим началом, у которых:
// - статус не cancelled, либо
// - статус cancelled и cancelled_by = advisor (отмена советником не освобождает слот)
func slotBlocked(start types.TimeString, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if appt.StartTime.Equal(start) && appt.BlocksSlot() {
			return true
		}
	}
	return false
}
