package bookingapi

import (
	"errors"
	"fmt"
)

var (
	// ErrBadRequest сервер отклонил запрос как некорректный
	ErrBadRequest = errors.New("bookingapi client: bad request")

	// ErrUnauthorized запрос без идентификатора пользователя
	ErrUnauthorized = errors.New("bookingapi client: authentication required")

	// ErrForbidden у пользователя нет прав на операцию
	ErrForbidden = errors.New("bookingapi client: access denied")

	// ErrNotFound ресурс не найден
	ErrNotFound = errors.New("bookingapi client: not found")

	// ErrConflict конфликт состояния (например, слот уже занят)
	ErrConflict = errors.New("bookingapi client: conflict")

	// ErrValidation сервер вернул ошибки валидации полей
	ErrValidation = errors.New("bookingapi client: validation failed")

	// ErrRateLimited слишком много запросов
	ErrRateLimited = errors.New("bookingapi client: rate limited")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("bookingapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")
)

// APIError ответ сервера с кодом ошибки; сообщение сервера показывается пользователю как есть
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
	kind       error
}

// Error возвращает сообщение сервера
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Unwrap позволяет сравнивать с sentinel ошибками через errors.Is
func (e *APIError) Unwrap() error {
	return e.kind
}
