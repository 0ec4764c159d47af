package get_availability

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	getAvailability "github.com/m04kA/SMC-VenueBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VenueID           int64        `json:"venueId"`
	UnavailableDates  []string     `json:"unavailableDates"`
	Date              *string      `json:"date,omitempty"`
	UnavailableHours  []int        `json:"unavailableHours,omitempty"`
	AllowedStartHours []HourOption `json:"allowedStartHours,omitempty"`
}

// HourOption вариант часа начала
type HourOption struct {
	Hour  int    `json:"hour"`
	Value string `json:"value"` // "HH:00"
	Label string `json:"label"` // "7:00 AM"
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(venueID int64, dateStr string) (*getAvailability.Request, error) {
	req := &getAvailability.Request{VenueID: venueID}
	if dateStr == "" {
		return req, nil
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}
	req.Date = &date

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		VenueID:          resp.VenueID,
		UnavailableDates: resp.UnavailableDates,
	}
	if out.UnavailableDates == nil {
		out.UnavailableDates = []string{}
	}

	if resp.Date != nil {
		date := domain.DateKey(*resp.Date)
		out.Date = &date
		out.UnavailableHours = resp.UnavailableHours

		for _, opt := range slots.HourOptions(resp.AllowedStartHours) {
			out.AllowedStartHours = append(out.AllowedStartHours, HourOption{
				Hour:  opt.Hour,
				Value: opt.Value.String(),
				Label: opt.Label,
			})
		}
	}

	return out
}
