package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusRejected BookingStatus = "rejected"
	StatusCanceled BookingStatus = "canceled"
)

// CancelledBy identifies who cancelled a booking
type CancelledBy string

const (
	CancelledByUser      CancelledBy = "user"
	CancelledByCustodian CancelledBy = "custodian"
	CancelledByAdmin     CancelledBy = "admin"
)

// Booking represents a venue reservation request
type Booking struct {
	ID          int64
	UserID      int64
	VenueID     int64
	EventName   string
	EventType   EventType
	Date        time.Time // calendar date, time of day is ignored
	TimeSlot    types.TimeString
	EndTime     types.TimeString // optional, empty for legacy records
	Capacity    int
	Description string
	Status      BookingStatus

	CancelledBy *CancelledBy

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot.
// Only canceled bookings release the slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCanceled
}

// IsApproved returns true if staff approved the booking
func (b *Booking) IsApproved() bool {
	return b.Status == StatusApproved
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// StartHour returns the hour of the time slot, 9 when it is missing or malformed
func (b *Booking) StartHour() int {
	return b.TimeSlot.HourOr(DefaultStartHour)
}

// EndHour returns the hour of the end time, or StartHour+1 when no end time is stored
func (b *Booking) EndHour() int {
	if h, err := b.EndTime.Hour(); err == nil && h > b.StartHour() {
		return h
	}
	return b.StartHour() + 1
}

// CanTransitionTo reports whether staff may move the booking to the given status
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCanceled
	case StatusApproved:
		return next == StatusCanceled || next == StatusRejected
	default:
		return false
	}
}

// ParseBookingStatus converts a status coming from the API into a known status.
// Matching is case-insensitive; legacy boolean values map to approved/pending;
// anything unknown is treated as pending.
func ParseBookingStatus(raw string) BookingStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "approved", "true":
		return StatusApproved
	case "rejected":
		return StatusRejected
	case "canceled", "cancelled":
		return StatusCanceled
	default:
		return StatusPending
	}
}

// IsValidBookingStatus reports whether raw names a known status exactly
func IsValidBookingStatus(raw string) bool {
	switch BookingStatus(raw) {
	case StatusPending, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// VenueBookingsFilter filter for bookings of a venue
type VenueBookingsFilter struct {
	VenueID         int64          // Required
	StartDate       *time.Time     // Optional lower bound (inclusive)
	EndDate         *time.Time     // Optional upper bound (inclusive)
	Status          *BookingStatus // Optional exact status
	IncludeCanceled bool           // Include canceled bookings
}

// BookingEventType names a booking notification
type BookingEventType string

const (
	EventBookingCreated       BookingEventType = "booking.created"
	EventBookingStatusChanged BookingEventType = "booking.status_changed"
	EventBookingCancelled     BookingEventType = "booking.cancelled"
)

// BookingEvent is emitted after a booking changes so open views can refresh
type BookingEvent struct {
	Type       BookingEventType `json:"type"`
	BookingID  int64            `json:"bookingId"`
	VenueID    int64            `json:"venueId"`
	UserID     int64            `json:"userId"`
	Date       string           `json:"date"`
	Status     BookingStatus    `json:"status"`
	OccurredAt time.Time        `json:"occurredAt"`
}

// NewBookingEvent builds an event for the booking
func NewBookingEvent(t BookingEventType, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       t,
		BookingID:  b.ID,
		VenueID:    b.VenueID,
		UserID:     b.UserID,
		Date:       DateKey(b.Date),
		Status:     b.Status,
		OccurredAt: at,
	}
}
