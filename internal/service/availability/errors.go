package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrUserNotFound возвращается, когда пользователь не найден в ProfileService
	ErrUserNotFound = errors.New("user not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrNotAnAdvisor возвращается, когда пользователь не является советником
	ErrNotAnAdvisor = errors.New("user is not an advisor")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне окна
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidDayOfWeek возвращается при дне недели вне диапазона Пн-Пт
	ErrInvalidDayOfWeek = errors.New("invalid day of week")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
