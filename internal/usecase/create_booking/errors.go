package create_booking

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrValidation возвращается, когда черновик не прошел проверку правил бронирования
	ErrValidation = errors.New("create_booking: booking request is invalid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError содержит сообщения по полям черновика.
// errors.Is(err, ErrValidation) возвращает true.
type ValidationError struct {
	Fields domain.ValidationResult
}

// Error реализует error
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields.Fields() {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is позволяет сравнивать с ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
