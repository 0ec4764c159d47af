package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want BookingStatus
	}{
		{raw: "approved", want: StatusApproved},
		{raw: "APPROVED", want: StatusApproved},
		{raw: "true", want: StatusApproved},
		{raw: "Rejected", want: StatusRejected},
		{raw: "cancelled", want: StatusCanceled},
		{raw: "canceled", want: StatusCanceled},
		{raw: "pending", want: StatusPending},
		{raw: "false", want: StatusPending},
		{raw: "", want: StatusPending},
		{raw: "on hold", want: StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBookingStatus(tt.raw))
		})
	}
}

func TestBooking_Hours(t *testing.T) {
	tests := []struct {
		name      string
		slot, end string
		wantStart int
		wantEnd   int
	}{
		{name: "start and end", slot: "14:00:00", end: "16:00:00", wantStart: 14, wantEnd: 16},
		{name: "no end", slot: "14:00", wantStart: 14, wantEnd: 15},
		{name: "end before start", slot: "14:00", end: "10:00", wantStart: 14, wantEnd: 15},
		{name: "malformed start", slot: "2pm", wantStart: 9, wantEnd: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{TimeSlot: types.TimeString(tt.slot), EndTime: types.TimeString(tt.end)}
			assert.Equal(t, tt.wantStart, b.StartHour())
			assert.Equal(t, tt.wantEnd, b.EndHour())
		})
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	approved := &Booking{Status: StatusApproved}
	canceled := &Booking{Status: StatusCanceled}

	assert.True(t, pending.CanTransitionTo(StatusApproved))
	assert.True(t, pending.CanTransitionTo(StatusRejected))
	assert.True(t, approved.CanTransitionTo(StatusCanceled))
	assert.False(t, approved.CanTransitionTo(StatusPending))
	assert.False(t, canceled.CanTransitionTo(StatusApproved))
	assert.False(t, canceled.IsActive())
	assert.True(t, (&Booking{Status: StatusRejected}).IsActive())
	assert.True(t, approved.IsApproved())
	assert.False(t, pending.IsApproved())
}
