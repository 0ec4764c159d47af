package venues

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venues: venue not found")

	// ErrAccessDenied возвращается, когда пользователь не управляет площадкой
	ErrAccessDenied = errors.New("venues: access denied")

	// ErrDuplicateCode возвращается, когда код площадки уже занят
	ErrDuplicateCode = errors.New("venues: venue code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("venues: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("venues: internal error")
)
