package get_venue_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день и перекрывает startDate/endDate.
func ToServiceRequest(venueID int64, query url.Values) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		VenueID:         venueID,
		IncludeCanceled: false, // По умолчанию только активные
	}

	var err error
	if req.StartDate, err = parseDate(query.Get("startDate")); err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	if req.EndDate, err = parseDate(query.Get("endDate")); err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	day, err := parseDate(query.Get("date"))
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	if day != nil {
		req.StartDate = day
		req.EndDate = day
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if includeStr := query.Get("includeCanceled"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCanceled value: %w", err)
		}
		req.IncludeCanceled = include
	}

	return req, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
