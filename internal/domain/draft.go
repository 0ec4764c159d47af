package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Validation result keys
const (
	FieldDate             = "date"
	FieldEventName        = "eventName"
	FieldEventType        = "eventType"
	FieldStartTime        = "startTime"
	FieldEndTime          = "endTime"
	FieldTime             = "time" // shared by duration bounds and overlap
	FieldStartTimeAdvance = "startTimeAdvance"
	FieldAttendees        = "attendees"
	FieldSubmit           = "submit" // submission failures reported back to the form
)

// BookingDraft is a booking request as entered by the user.
// Values are kept as entered so that validation can report malformed input.
type BookingDraft struct {
	Date        string // YYYY-MM-DD or another calendar format
	EventName   string
	EventType   string
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Attendees   string
	Description string
}

// NewBookingDraft returns an empty draft dated tomorrow with a 09:00-10:00 slot
func NewBookingDraft(now time.Time) BookingDraft {
	return BookingDraft{
		Date:      DateKey(Tomorrow(now)),
		StartTime: "09:00",
		EndTime:   "10:00",
	}
}

// DefaultDuration is used when a request omits the end time
const DefaultDuration = time.Hour

// WithDefaultEndTime fills an omitted end time with start + DefaultDuration.
// A malformed start, or one that would run past midnight, leaves the draft as is.
func (d BookingDraft) WithDefaultEndTime() BookingDraft {
	if strings.TrimSpace(d.EndTime) != "" {
		return d
	}
	start, err := types.NewTimeStringFromString(d.StartTime)
	if err != nil {
		return d
	}
	end, err := start.AddMinutes(int(DefaultDuration / time.Minute))
	if err != nil {
		return d
	}
	d.EndTime = end.String()
	return d
}

// ValidationResult maps a field key to its error message. Empty means valid.
type ValidationResult map[string]string

// IsValid returns true when no rule failed
func (r ValidationResult) IsValid() bool {
	return len(r) == 0
}

// Has returns true if the field has an error
func (r ValidationResult) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Fields returns the failed field keys in sorted order
func (r ValidationResult) Fields() []string {
	fields := make([]string, 0, len(r))
	for f := range r {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
