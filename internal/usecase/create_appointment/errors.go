package create_appointment

import "errors"

var (
	// ErrAdvisorNotFound возвращается, когда советник не найден
	ErrAdvisorNotFound = errors.New("create_appointment: advisor not found")

	// ErrStudentNotFound возвращается, когда студент не найден
	ErrStudentNotFound = errors.New("create_appointment: student not found")

	// ErrNotAnAdvisor возвращается, когда целевой пользователь не является советником
	ErrNotAnAdvisor = errors.New("create_appointment: user is not an advisor")

	// ErrNotAStudent возвращается, когда бронирующий пользователь не является студентом
	ErrNotAStudent = errors.New("create_appointment: user is not a student")

	// ErrInvalidDate возвращается при некорректной дате (в прошлом или выходной)
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не совпадает
	// ни с одним слотом из окон доступности советника
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotTaken возвращается, когда выбранный слот уже занят
	ErrSlotTaken = errors.New("create_appointment: slot is already booked")

	// ErrDailyCapExceeded возвращается, когда у студента уже есть активная запись на эту дату
	ErrDailyCapExceeded = errors.New("create_appointment: student already has an active appointment on this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
