package submitter

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// NormalizeDate приводит дату к YYYY-MM-DD по календарным компонентам.
// Зона не учитывается, поэтому дата не сдвигается через полночь.
func NormalizeDate(raw string) (string, error) {
	date, err := domain.ParseCalendarDate(raw, time.UTC)
	if err != nil {
		return "", err
	}
	return domain.DateKey(date), nil
}

// NormalizeTimeSlot приводит время к виду HH:mm:00
func NormalizeTimeSlot(raw string) (string, error) {
	t, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return "", fmt.Errorf("normalize time %q: %w", raw, err)
	}
	return t.WithSeconds()
}
