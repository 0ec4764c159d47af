package validate_booking

import (
	"encoding/json"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	validateBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/validate_booking"
)

// ValidateBookingRequest черновик формы бронирования
type ValidateBookingRequest struct {
	EventName   string      `json:"eventName"`
	Date        string      `json:"date"`
	TimeSlot    string      `json:"timeSlot"`
	EndTime     string      `json:"endTime"`
	Capacity    json.Number `json:"capacity"`
	Description string      `json:"description"`
	EventType   string      `json:"eventType"`
}

// ValidateBookingResponse HTTP response model
type ValidateBookingResponse struct {
	Valid           bool              `json:"valid"`
	Errors          map[string]string `json:"errors"`
	AllowedEndHours []string          `json:"allowedEndHours"` // "HH:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidateBookingRequest) ToUseCaseRequest(venueID int64) *validateBooking.Request {
	return &validateBooking.Request{
		VenueID: venueID,
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
func FromUseCaseResponse(resp *validateBooking.Response) *ValidateBookingResponse {
	out := &ValidateBookingResponse{
		Valid:           resp.Valid(),
		Errors:          resp.Errors,
		AllowedEndHours: make([]string, 0, len(resp.AllowedEndHours)),
	}
	if out.Errors == nil {
		out.Errors = map[string]string{}
	}
	for _, opt := range slots.HourOptions(resp.AllowedEndHours) {
		out.AllowedEndHours = append(out.AllowedEndHours, opt.Value.String())
	}
	return out
}
