package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func booking(date time.Time, slot string, status BookingStatus) *Booking {
	return &Booking{VenueID: 1, Date: date, TimeSlot: types.TimeString(slot), Status: status}
}

func TestBuildAvailabilityIndex_NonCanceledBookingsOccupy(t *testing.T) {
	bookings := []*Booking{
		booking(day(2025, 6, 10), "14:00:00", StatusApproved),
		booking(day(2025, 6, 10), "08:00", StatusPending),
		booking(day(2025, 6, 11), "10:30", StatusRejected),
	}

	idx := BuildAvailabilityIndex(bookings)

	for _, b := range bookings {
		assert.True(t, idx.IsDateUnavailable(b.Date))
		assert.True(t, idx.IsHourUnavailable(b.Date, b.StartHour()))
	}
	assert.Equal(t, []int{8, 14}, idx.UnavailableHours(day(2025, 6, 10)))
	assert.Equal(t, []int{10}, idx.UnavailableHours(day(2025, 6, 11)))
	assert.Equal(t, []string{"2025-06-10", "2025-06-11"}, idx.UnavailableDates())
}

func TestBuildAvailabilityIndex_CanceledIgnored(t *testing.T) {
	idx := BuildAvailabilityIndex([]*Booking{
		booking(day(2025, 6, 12), "14:00", StatusCanceled),
	})

	assert.False(t, idx.IsDateUnavailable(day(2025, 6, 12)))
	assert.False(t, idx.IsHourUnavailable(day(2025, 6, 12), 14))
	assert.Empty(t, idx.UnavailableDates())
}

func TestBuildAvailabilityIndex_MalformedTimeDefaultsToNine(t *testing.T) {
	idx := BuildAvailabilityIndex([]*Booking{
		booking(day(2025, 6, 13), "", StatusPending),
		booking(day(2025, 6, 14), "half past two", StatusPending),
		booking(time.Time{}, "10:00", StatusPending),
		nil,
	})

	assert.True(t, idx.IsHourUnavailable(day(2025, 6, 13), 9))
	assert.True(t, idx.IsHourUnavailable(day(2025, 6, 14), 9))
	assert.Equal(t, []string{"2025-06-13", "2025-06-14"}, idx.UnavailableDates())
}

func TestBuildAvailabilityIndex_DateKeyIgnoresTimeOfDayAndZone(t *testing.T) {
	plus5 := time.FixedZone("UTC+5", 5*3600)
	idx := BuildAvailabilityIndex([]*Booking{
		booking(time.Date(2025, 6, 10, 23, 30, 0, 0, plus5), "14:00", StatusApproved),
	})

	assert.True(t, idx.IsDateUnavailable(day(2025, 6, 10)))
	assert.False(t, idx.IsDateUnavailable(day(2025, 6, 11)))
	assert.False(t, idx.IsDateUnavailable(day(2025, 6, 9)))
}

func TestBuildAvailabilityIndex_Idempotent(t *testing.T) {
	bookings := []*Booking{
		booking(day(2025, 6, 10), "14:00", StatusApproved),
		booking(day(2025, 6, 10), "14:00", StatusPending),
		booking(day(2025, 6, 20), "07:00", StatusPending),
	}

	first := BuildAvailabilityIndex(bookings)
	second := BuildAvailabilityIndex(bookings)

	assert.True(t, first.Equal(second))
	assert.Equal(t, first, second)
	assert.False(t, first.Equal(BuildAvailabilityIndex(bookings[:1])))
}

func TestAvailabilityIndex_IsRangeUnavailable(t *testing.T) {
	date := day(2025, 6, 10)
	idx := BuildAvailabilityIndex([]*Booking{booking(date, "14:00", StatusApproved)})

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{name: "covers occupied hour", start: 13, end: 15, want: true},
		{name: "starts at occupied hour", start: 14, end: 15, want: true},
		{name: "ends at occupied hour", start: 12, end: 14, want: false},
		{name: "after occupied hour", start: 15, end: 16, want: false},
		{name: "empty range", start: 14, end: 14, want: false},
		{name: "inverted range", start: 16, end: 13, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.IsRangeUnavailable(date, tt.start, tt.end))
		})
	}

	assert.False(t, idx.IsRangeUnavailable(day(2025, 6, 11), 0, 24))
}

func TestAvailabilityIndex_EmptyAndNil(t *testing.T) {
	empty := BuildAvailabilityIndex(nil)
	var nilIdx *AvailabilityIndex

	for _, idx := range []*AvailabilityIndex{empty, nilIdx} {
		assert.False(t, idx.IsDateUnavailable(day(2030, 1, 1)))
		assert.False(t, idx.IsHourUnavailable(day(2030, 1, 1), 9))
		assert.False(t, idx.IsRangeUnavailable(day(2030, 1, 1), 7, 22))
		assert.Empty(t, idx.UnavailableHours(day(2030, 1, 1)))
	}
}
