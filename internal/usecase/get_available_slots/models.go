package get_available_slots

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	AdvisorID int64 // ID советника
	// RequestingUserID ID запрашивающего студента; используется для пометки
	// собственной записи (isOwnBooking). 0 - аноним, пометка не ставится.
	RequestingUserID int64
	Date             time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	AdvisorID int64     // ID советника
	Date      time.Time // Дата, на которую запрашивались слоты
	Slots     []Slot    // Все слоты дня с пометками занятости
}

// Slot модель 30-минутного слота с аннотацией занятости
type Slot struct {
	StartTime    types.TimeString // Время начала слота (например, "09:00")
	EndTime      types.TimeString // Время конца слота (например, "09:30")
	IsBooked     bool             // Слот занят (недоступен для выбора)
	IsOwnBooking bool             // Занят записью самого запрашивающего студента
}
