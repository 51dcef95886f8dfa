package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись на консультацию не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotConflict возвращается при нарушении ограничения уникальности слота
	// (advisor_id, appointment_date, start_time) - слот уже занят
	ErrSlotConflict = errors.New("appointment.repository: slot already booked")

	// ErrDailyCapConflict возвращается при нарушении ограничения
	// "одна активная запись студента в день"
	ErrDailyCapConflict = errors.New("appointment.repository: student already has an active appointment on this date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
