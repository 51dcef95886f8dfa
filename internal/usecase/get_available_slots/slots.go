package get_available_slots

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/internal/domain"
	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

// generateCandidateSlots генерирует список 30-минутных слотов на календарную дату
// из недельных окон доступности советника.
//
// Правила:
// - выходные (суббота/воскресенье) дают пустой список - это не ошибка, приём не ведётся;
// - учитываются только окна на нужный день недели с is_available = true;
// - внутри окна слоты идут с фиксированным шагом 30 минут от start_time;
//   неполный хвост окна (меньше 30 минут до end_time) отбрасывается;
// - порядок: по окнам, внутри окна - хронологический.
//
// Пересекающиеся окна одного советника могут породить дубли start -
// дедупликация выполняется отдельно (dedupeByStart), см. DESIGN.md.
func generateCandidateSlots(windows []*domain.AvailabilityWindow, date time.Time) ([]domain.CandidateSlot, error) {
	if !domain.IsBusinessDay(date) {
		return []domain.CandidateSlot{}, nil
	}

	dayOfWeek := domain.WeekdayIndex(date)
	slots := make([]domain.CandidateSlot, 0)

	for _, window := range windows {
		if window.DayOfWeek != dayOfWeek || !window.IsAvailable {
			continue
		}

		current := window.StartTime
		for current.IsBefore(window.EndTime) {
			slotEnd, err := current.AddMinutes(domain.SlotDurationMinutes)
			if err != nil {
				// Окно упирается в полночь - дальше слотов нет
				break
			}

			// Слот должен целиком помещаться в окно
			if slotEnd.IsAfter(window.EndTime) {
				break
			}

			slots = append(slots, domain.CandidateSlot{
				Start: current,
				End:   slotEnd,
			})

			current = slotEnd
		}
	}

	return slots, nil
}

// dedupeByStart убирает дубликаты слотов с одинаковым началом,
// сохраняя первый встретившийся и порядок остальных.
// Дубли возможны только при пересекающихся окнах одного дня.
func dedupeByStart(slots []domain.CandidateSlot) []domain.CandidateSlot {
	seen := make(map[types.TimeString]struct{}, len(slots))
	result := make([]domain.CandidateSlot, 0, len(slots))

	for _, slot := range slots {
		if _, ok := seen[slot.Start]; ok {
			continue
		}
		seen[slot.Start] = struct{}{}
		result = append(result, slot)
	}

	return result
}

// annotateSlots помечает каждый слот занятостью по существующим записям.
//
// Слот занят, если есть запись с точно совпадающим временем начала и:
// - статус не cancelled, ЛИБО
// - статус cancelled и cancelled_by = advisor.
// Отмена студентом освобождает слот; отмена советником оставляет его занятым
// (наблюдаемое поведение исходной системы, сохранено осознанно - см. DESIGN.md).
//
// isOwnBooking ставится, когда блокирующая запись принадлежит запрашивающему
// студенту. Занятый слот не предлагается для выбора независимо от владельца.
func annotateSlots(slots []domain.CandidateSlot, appointments []*domain.Appointment, requestingUserID int64) []Slot {
	result := make([]Slot, len(slots))

	for i, slot := range slots {
		annotated := Slot{
			StartTime: slot.Start,
			EndTime:   slot.End,
		}

		for _, appt := range appointments {
			if !appt.StartTime.Equal(slot.Start) {
				continue
			}
			if !appt.BlocksSlot() {
				continue
			}

			annotated.IsBooked = true
			annotated.IsOwnBooking = requestingUserID != 0 && appt.StudentID == requestingUserID
			break
		}

		result[i] = annotated
	}

	return result
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
