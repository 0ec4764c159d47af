package history

import "time"

// Entry краткая запись об отправленной заявке для экрана истории
type Entry struct {
	BookingID  int64     `json:"bookingId"`
	VenueID    int64     `json:"venueId"`
	VenueName  string    `json:"venueName"`
	EventName  string    `json:"eventName"`
	EventDate  string    `json:"eventDate"` // "02 Jan 2006"
	Duration   string    `json:"duration"`  // "9:00 AM - 10:00 AM"
	Guests     string    `json:"guests"`    // "40 pax"
	BookedBy   string    `json:"bookedBy"`
	Status     string    `json:"status"`
	RecordedAt time.Time `json:"recordedAt"`
}
