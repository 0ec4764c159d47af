package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// MsgCapacityExceeded сообщение, когда участников больше, чем вмещает площадка
const MsgCapacityExceeded = "Attendees exceed the venue capacity of %d."

// validateRequest валидирует идентификаторы запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if utf8.RuneCountInString(req.Draft.Description) > domain.MaxDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	return nil
}

// checkCapacity добавляет ошибку, если участников больше вместимости площадки.
// Вместимость 0 означает, что ограничение не задано.
func checkCapacity(result domain.ValidationResult, attendees string, venue *domain.Venue) {
	if result.Has(domain.FieldAttendees) || venue.Capacity <= 0 {
		return
	}
	n, err := slots.ParseAttendees(attendees)
	if err != nil {
		return
	}
	if n > venue.Capacity {
		result[domain.FieldAttendees] = fmt.Sprintf(MsgCapacityExceeded, venue.Capacity)
	}
}

// buildBooking собирает бронирование из проверенного черновика
func buildBooking(req *Request, date time.Time) (*domain.Booking, error) {
	start, err := types.NewTimeStringFromString(req.Draft.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.Draft.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	attendees, err := slots.ParseAttendees(req.Draft.Attendees)
	if err != nil {
		return nil, fmt.Errorf("%w: attendees: %v", ErrInvalidInput, err)
	}

	return &domain.Booking{
		UserID:      req.UserID,
		VenueID:     req.VenueID,
		EventName:   strings.TrimSpace(req.Draft.EventName),
		EventType:   domain.EventType(strings.TrimSpace(req.Draft.EventType)),
		Date:        date,
		TimeSlot:    start,
		EndTime:     end,
		Capacity:    attendees,
		Description: strings.TrimSpace(req.Draft.Description),
		Status:      domain.StatusPending,
	}, nil
}
