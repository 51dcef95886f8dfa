package get_available_slots

import "errors"

var (
	// ErrAdvisorNotFound возвращается, когда советник не найден
	ErrAdvisorNotFound = errors.New("get_available_slots: advisor not found")

	// ErrNotAnAdvisor возвращается, когда пользователь существует, но не является советником
	ErrNotAnAdvisor = errors.New("get_available_slots: user is not an advisor")

	// ErrInvalidDate возвращается при некорректной дате (в прошлом)
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт бронирования
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
