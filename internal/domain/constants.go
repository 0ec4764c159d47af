package domain

import "time"

// Booking window and rule defaults
const (
	DefaultWindowOpenHour   = 7  // 07:00
	DefaultWindowCloseHour  = 22 // 22:00
	DefaultMaxDurationHours = 6
	DefaultMinNotice        = 24 * time.Hour
	DefaultStartHour        = 9 // used when a stored time slot is missing or malformed
)

// Business validation constants
const (
	MaxEventNameLength   = 200
	MaxDescriptionLength = 2000
	MaxHistoryEntries    = 50
)

// Time format constants
const (
	TimeFormat            = "15:04"      // HH:MM
	TimeWithSecondsFormat = "15:04:05"   // HH:MM:SS
	DateFormat            = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat     = "02 Jan 2006"
	DisplayTimeFormat     = "3:04 PM"
)

// EventType is the kind of event a booking is made for
type EventType string

const (
	EventTypeMeeting  EventType = "Meeting"
	EventTypeWorkshop EventType = "Workshop"
	EventTypeSeminar  EventType = "Seminar"
	EventTypeAcademic EventType = "Academic"
)

// EventTypes the fixed set of selectable event types
var EventTypes = []EventType{
	EventTypeMeeting,
	EventTypeWorkshop,
	EventTypeSeminar,
	EventTypeAcademic,
}

// IsValidEventType reports whether t is one of EventTypes
func IsValidEventType(t string) bool {
	for _, et := range EventTypes {
		if string(et) == t {
			return true
		}
	}
	return false
}

// ActiveStatuses statuses that occupy a slot
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
}
