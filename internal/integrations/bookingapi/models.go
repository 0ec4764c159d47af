package bookingapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// VenueRef ссылка на площадку
type VenueRef struct {
	ID int64 `json:"id"`
}

// Venue модель площадки из API
type Venue struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Building    string `json:"building"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	CustodianID *int64 `json:"custodianId"`
}

// ToDomain конвертирует площадку в domain модель
func (v *Venue) ToDomain() *domain.Venue {
	return &domain.Venue{
		ID:          v.ID,
		Name:        v.Name,
		Code:        v.Code,
		Building:    v.Building,
		Location:    v.Location,
		Capacity:    v.Capacity,
		Description: v.Description,
		ImageURL:    v.ImageURL,
		CustodianID: v.CustodianID,
	}
}

// Status статус бронирования; принимает и строку, и устаревшее булево значение
type Status string

// UnmarshalJSON разбирает "approved" или true/false
func (s *Status) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*s = "true"
		} else {
			*s = "false"
		}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*s = ""
		return nil
	}
	*s = Status(str)
	return nil
}

// Booking модель бронирования из API
type Booking struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"userId"`
	Venue       VenueRef `json:"venue"`
	EventName   string   `json:"eventName"`
	EventType   string   `json:"eventType"`
	Date        string   `json:"date"`
	TimeSlot    string   `json:"timeSlot"`
	EndTime     *string  `json:"endTime"`
	Capacity    int      `json:"capacity"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	CancelledBy *string  `json:"cancelledBy"`
}

// ToDomain конвертирует бронирование в domain модель.
// Дата читается по календарным компонентам; нераспознанная дата остаётся нулевой,
// статус разбирается нестрого.
func (b *Booking) ToDomain() *domain.Booking {
	booking := &domain.Booking{
		ID:          b.ID,
		UserID:      b.UserID,
		VenueID:     b.Venue.ID,
		EventName:   b.EventName,
		EventType:   domain.EventType(b.EventType),
		TimeSlot:    types.TimeString(strings.TrimSpace(b.TimeSlot)),
		Capacity:    b.Capacity,
		Description: b.Description,
		Status:      domain.ParseBookingStatus(string(b.Status)),
	}

	if date, err := domain.ParseCalendarDate(b.Date, time.UTC); err == nil {
		booking.Date = date
	}
	if b.EndTime != nil {
		booking.EndTime = types.TimeString(strings.TrimSpace(*b.EndTime))
	}
	if b.CancelledBy != nil {
		by := domain.CancelledBy(*b.CancelledBy)
		booking.CancelledBy = &by
	}

	return booking
}

// BookingList ответ со списком бронирований
type BookingList struct {
	Bookings []Booking `json:"bookings"`
}

// VenueList ответ со списком площадок
type VenueList struct {
	Venues []Venue `json:"venues"`
}

// CreateBookingRequest тело запроса на создание бронирования
type CreateBookingRequest struct {
	EventName   string   `json:"eventName"`
	Date        string   `json:"date"`              // YYYY-MM-DD
	TimeSlot    string   `json:"timeSlot"`          // HH:mm:00
	EndTime     string   `json:"endTime,omitempty"` // HH:mm:00
	Capacity    int      `json:"capacity"`
	Description string   `json:"description"`
	EventType   string   `json:"eventType"`
	Status      string   `json:"status"`
	Venue       VenueRef `json:"venue"`
}

// ErrorResponse модель ошибки от API
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}
