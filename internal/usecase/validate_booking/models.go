package validate_booking

import "github.com/m04kA/SMC-VenueBookingService/internal/domain"

// Request черновик для предварительной проверки
type Request struct {
	VenueID int64
	Draft   domain.BookingDraft
}

// Response результат проверки без создания бронирования
type Response struct {
	Errors          domain.ValidationResult
	AllowedEndHours []int // Допустимые часы окончания для выбранного начала
}

// Valid возвращает true, если черновик можно отправлять
func (r *Response) Valid() bool {
	return r.Errors.IsValid()
}
