package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

func hoursRange(from, to int) []int {
	hours := make([]int, 0, to-from+1)
	for h := from; h <= to; h++ {
		hours = append(hours, h)
	}
	return hours
}

func TestAllowedStartHours_EmptyIndex(t *testing.T) {
	v := newTestValidator()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	got := v.AllowedStartHours(date, domain.BuildAvailabilityIndex(nil))

	// 22:00 закрывает окно, начать в 22:00 нельзя: нет ни одного часа окончания
	assert.Equal(t, hoursRange(7, 21), got)
	assert.Equal(t, got, v.AllowedStartHours(date, nil))
}

func TestAllowedStartHours_SkipsOccupiedHours(t *testing.T) {
	v := newTestValidator()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	idx := domain.BuildAvailabilityIndex([]*domain.Booking{
		{Date: date, TimeSlot: "14:00", Status: domain.StatusApproved},
		{Date: date, TimeSlot: "22:00", Status: domain.StatusPending},
		{Date: date, TimeSlot: "08:00", Status: domain.StatusCanceled},
	})

	got := v.AllowedStartHours(date, idx)

	assert.NotContains(t, got, 14)
	assert.Contains(t, got, 8)
	// Из 21:00 можно закончить только в 22:00, а этот час занят
	assert.NotContains(t, got, 21)
	assert.Contains(t, got, 13)
}

func TestAllowedEndHours(t *testing.T) {
	v := newTestValidator()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	idx := domain.BuildAvailabilityIndex([]*domain.Booking{
		{Date: date, TimeSlot: "12:00", Status: domain.StatusApproved},
	})

	tests := []struct {
		name  string
		start int
		idx   *domain.AvailabilityIndex
		want  []int
	}{
		{name: "full six hours", start: 9, want: []int{10, 11, 12, 13, 14, 15}},
		{name: "capped at window close", start: 19, want: []int{20, 21, 22}},
		{name: "last start hour", start: 21, want: []int{22}},
		{name: "window close has no end", start: 22, want: []int{}},
		{name: "occupied hours excluded", start: 9, idx: idx, want: []int{10, 11, 13, 14, 15}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.AllowedEndHours(date, tt.start, tt.idx))
		})
	}
}

func TestReconcileEndTime(t *testing.T) {
	tests := []struct {
		name    string
		current string
		allowed []int
		want    string
	}{
		{name: "current still allowed", current: "11:00", allowed: []int{10, 11, 12}, want: "11:00"},
		{name: "current with seconds", current: "11:00:00", allowed: []int{10, 11}, want: "11:00"},
		{name: "reset to first", current: "09:00", allowed: []int{10, 11}, want: "10:00"},
		{name: "empty current", current: "", allowed: []int{15}, want: "15:00"},
		{name: "not on the hour", current: "11:30", allowed: []int{11, 12}, want: "11:00"},
		{name: "nothing allowed", current: "11:00", allowed: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconcileEndTime(tt.current, tt.allowed))
		})
	}
}

func TestReconcileStartTime(t *testing.T) {
	assert.Equal(t, "13:00", ReconcileStartTime("13:00", []int{7, 13}))
	assert.Equal(t, "07:00", ReconcileStartTime("09:00", []int{7, 8, 10}))
	assert.Equal(t, "07:00", ReconcileStartTime("1pm", []int{7}))
	assert.Equal(t, "", ReconcileStartTime("09:00", nil))
}

func TestHourOptions(t *testing.T) {
	got := HourOptions([]int{7, 12, 22})

	assert.Equal(t, []HourOption{
		{Hour: 7, Value: "07:00", Label: "7:00 AM"},
		{Hour: 12, Value: "12:00", Label: "12:00 PM"},
		{Hour: 22, Value: "22:00", Label: "10:00 PM"},
	}, got)
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "9:00 AM - 10:00 AM", FormatRange("09:00", "10:00"))
	assert.Equal(t, "1:30 PM - 3:00 PM", FormatRange(types.TimeString("13:30:00"), "15:00"))
}
