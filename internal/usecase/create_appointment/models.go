package create_appointment

import (
	"time"

	"github.com/m04kA/UCA-AdvisoryService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	StudentID int64            // ID студента
	AdvisorID int64            // ID советника
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время начала слота (например, "09:00")
	Notes     *string          // Заметки студента для советника (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	StudentID       int64            // ID студента
	AdvisorID       int64            // ID советника
	AppointmentDate time.Time        // Дата записи
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца (начало + 30 минут)
	Status          string           // Статус (всегда pending при создании)
	Notes           *string          // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
