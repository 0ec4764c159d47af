package create_booking

import (
	"encoding/json"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Status от клиента игнорируется: новое бронирование всегда pending.
type CreateBookingRequest struct {
	EventName   string          `json:"eventName"`
	Date        string          `json:"date"`     // "2025-06-10"
	TimeSlot    string          `json:"timeSlot"` // "13:00:00"
	EndTime     string          `json:"endTime"`  // "15:00:00"
	Capacity    json.Number     `json:"capacity"`
	Description string          `json:"description"`
	EventType   string          `json:"eventType"`
	Status      string          `json:"status,omitempty"`
	Venue       models.VenueRef `json:"venue"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Значения не разбираются здесь: о некорректных полях сообщит проверка правил.
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:  userID,
		VenueID: r.Venue.ID,
		Draft: domain.BookingDraft{
			Date:        r.Date,
			EventName:   r.EventName,
			EventType:   r.EventType,
			StartTime:   r.TimeSlot,
			EndTime:     r.EndTime,
			Attendees:   r.Capacity.String(),
			Description: r.Description,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
