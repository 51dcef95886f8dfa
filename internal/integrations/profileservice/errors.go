package profileservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("profileservice: user not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервиса
	ErrInvalidResponse = errors.New("profileservice: invalid response")

	// ErrServiceDegraded возвращается при недоступности сервиса (graceful degradation)
	ErrServiceDegraded = errors.New("profileservice: service unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("profileservice: internal error")
)
