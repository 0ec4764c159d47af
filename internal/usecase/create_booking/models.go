package create_booking

import (
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID  int64               // ID пользователя из заголовка X-User-ID
	VenueID int64               // ID площадки
	Draft   domain.BookingDraft // Данные формы в том виде, в котором их ввел пользователь
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
	Venue   *domain.Venue
}
