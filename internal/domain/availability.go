package domain

import (
	"sort"
	"time"
)

// AvailabilityIndex is a read-only lookup of occupied dates and hours for one venue.
// It is rebuilt wholesale from a fresh booking list and never updated in place.
// A nil index reports everything as available.
type AvailabilityIndex struct {
	unavailableDates map[string]struct{}
	unavailableHours map[string]map[int]struct{}
}

// BuildAvailabilityIndex indexes every non-canceled booking by calendar date and start hour.
// Malformed time slots fall back to DefaultStartHour; bookings without a date are skipped.
// Building never fails so partial data cannot block the rest of the calendar.
func BuildAvailabilityIndex(bookings []*Booking) *AvailabilityIndex {
	idx := &AvailabilityIndex{
		unavailableDates: make(map[string]struct{}),
		unavailableHours: make(map[string]map[int]struct{}),
	}

	for _, b := range bookings {
		if b == nil || !b.IsActive() || b.Date.IsZero() {
			continue
		}

		key := DateKey(b.Date)
		hours, ok := idx.unavailableHours[key]
		if !ok {
			hours = make(map[int]struct{})
			idx.unavailableHours[key] = hours
		}
		hours[b.StartHour()] = struct{}{}
		idx.unavailableDates[key] = struct{}{}
	}

	return idx
}

// IsDateUnavailable returns true if the date has at least one non-canceled booking
func (i *AvailabilityIndex) IsDateUnavailable(date time.Time) bool {
	if i == nil {
		return false
	}
	_, ok := i.unavailableDates[DateKey(date)]
	return ok
}

// IsHourUnavailable returns true if a non-canceled booking starts at hour on date
func (i *AvailabilityIndex) IsHourUnavailable(date time.Time, hour int) bool {
	if i == nil {
		return false
	}
	hours, ok := i.unavailableHours[DateKey(date)]
	if !ok {
		return false
	}
	_, taken := hours[hour]
	return taken
}

// IsRangeUnavailable returns true if any hour in [startHour, endHour) is taken.
// The end hour itself is never checked; an empty range is always available.
func (i *AvailabilityIndex) IsRangeUnavailable(date time.Time, startHour, endHour int) bool {
	for h := startHour; h < endHour; h++ {
		if i.IsHourUnavailable(date, h) {
			return true
		}
	}
	return false
}

// UnavailableDates returns the occupied dates as sorted YYYY-MM-DD keys
func (i *AvailabilityIndex) UnavailableDates() []string {
	if i == nil {
		return []string{}
	}
	dates := make([]string, 0, len(i.unavailableDates))
	for key := range i.unavailableDates {
		dates = append(dates, key)
	}
	sort.Strings(dates)
	return dates
}

// UnavailableHours returns the occupied hours of date in ascending order
func (i *AvailabilityIndex) UnavailableHours(date time.Time) []int {
	if i == nil {
		return []int{}
	}
	hours := make([]int, 0, len(i.unavailableHours[DateKey(date)]))
	for h := range i.unavailableHours[DateKey(date)] {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	return hours
}

// Equal reports structural equality of two indexes
func (i *AvailabilityIndex) Equal(other *AvailabilityIndex) bool {
	a, b := i.UnavailableDates(), other.UnavailableDates()
	if len(a) != len(b) {
		return false
	}
	for n := range a {
		if a[n] != b[n] {
			return false
		}
		ha, hb := i.unavailableHours[a[n]], other.unavailableHours[b[n]]
		if len(ha) != len(hb) {
			return false
		}
		for h := range ha {
			if _, ok := hb[h]; !ok {
				return false
			}
		}
	}
	return true
}
