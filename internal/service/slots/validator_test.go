package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	cfg := DefaultConfig()
	cfg.Location = time.UTC
	return NewValidator(cfg)
}

func validDraft() domain.BookingDraft {
	return domain.BookingDraft{
		Date:      "2025-06-10",
		EventName: "Faculty meeting",
		EventType: "Meeting",
		StartTime: "09:00",
		EndTime:   "10:00",
		Attendees: "25",
	}
}

func indexWith(date string, slot string, status domain.BookingStatus) *domain.AvailabilityIndex {
	d, _ := time.Parse(domain.DateFormat, date)
	return domain.BuildAvailabilityIndex([]*domain.Booking{
		{ID: 1, VenueID: 1, Date: d, TimeSlot: types.TimeString(slot), Status: status},
	})
}

func TestValidator_ValidDraft(t *testing.T) {
	v := newTestValidator()

	result := v.Validate(validDraft(), domain.BuildAvailabilityIndex(nil), testNow)

	assert.True(t, result.IsValid(), "unexpected errors: %v", result)
}

func TestValidator_Date(t *testing.T) {
	v := newTestValidator()
	now := time.Date(2025, 6, 9, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		idx     *domain.AvailabilityIndex
		wantMsg string
	}{
		{name: "empty", date: "", wantMsg: MsgDateRequired},
		{name: "blank", date: "   ", wantMsg: MsgDateRequired},
		{name: "unparseable", date: "someday", wantMsg: MsgDateInvalid},
		{name: "past", date: "2025-06-01", wantMsg: MsgDateNotFuture},
		{name: "today", date: "2025-06-09", wantMsg: MsgDateNotFuture},
		{name: "tomorrow allowed", date: "2025-06-10"},
		{name: "booked date", date: "2025-06-12", idx: indexWith("2025-06-12", "14:00", domain.StatusApproved), wantMsg: MsgDateBooked},
		{name: "pending booking blocks date", date: "2025-06-12", idx: indexWith("2025-06-12", "18:00", domain.StatusPending), wantMsg: MsgDateBooked},
		{name: "canceled booking frees date", date: "2025-06-12", idx: indexWith("2025-06-12", "14:00", domain.StatusCanceled)},
		{name: "past wins over booked", date: "2025-06-01", idx: indexWith("2025-06-01", "14:00", domain.StatusApproved), wantMsg: MsgDateNotFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			draft.Date = tt.date
			draft.StartTime = "21:00"
			draft.EndTime = "22:00"

			result := v.Validate(draft, tt.idx, now)

			if tt.wantMsg == "" {
				assert.False(t, result.Has(domain.FieldDate), "unexpected: %v", result)
				return
			}
			assert.Equal(t, tt.wantMsg, result[domain.FieldDate])
			assert.False(t, result.IsValid())
		})
	}
}

func TestValidator_EventFields(t *testing.T) {
	v := newTestValidator()

	draft := validDraft()
	draft.EventName = "   "
	draft.EventType = ""
	result := v.Validate(draft, nil, testNow)
	assert.Equal(t, MsgEventNameRequired, result[domain.FieldEventName])
	assert.Equal(t, MsgEventTypeRequired, result[domain.FieldEventType])

	draft = validDraft()
	draft.EventType = "Party"
	result = v.Validate(draft, nil, testNow)
	assert.Equal(t, MsgEventTypeRequired, result[domain.FieldEventType])

	for _, et := range domain.EventTypes {
		draft = validDraft()
		draft.EventType = string(et)
		assert.True(t, v.Validate(draft, nil, testNow).IsValid(), "event type %s", et)
	}
}

func TestValidator_Duration(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name       string
		start, end string
		wantMsg    string
	}{
		{name: "zero hours", start: "10:00", end: "10:00", wantMsg: MsgEndNotAfterStart},
		{name: "end before start", start: "12:00", end: "10:00", wantMsg: MsgEndNotAfterStart},
		{name: "seven hours", start: "08:00", end: "15:00", wantMsg: "Duration cannot exceed 6 hours."},
		{name: "one hour", start: "10:00", end: "11:00"},
		{name: "six hours", start: "10:00", end: "16:00"},
		{name: "before window", start: "06:00", end: "08:00", wantMsg: "Bookings must start and end between 7:00 AM and 10:00 PM."},
		{name: "after window", start: "21:00", end: "23:00", wantMsg: "Bookings must start and end between 7:00 AM and 10:00 PM."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			draft.StartTime = tt.start
			draft.EndTime = tt.end

			result := v.Validate(draft, nil, testNow)

			if tt.wantMsg == "" {
				assert.True(t, result.IsValid(), "unexpected: %v", result)
				return
			}
			assert.Equal(t, tt.wantMsg, result[domain.FieldTime])
		})
	}
}

func TestValidator_MissingTimes(t *testing.T) {
	v := newTestValidator()

	draft := validDraft()
	draft.StartTime = ""
	draft.EndTime = "25:00"

	result := v.Validate(draft, nil, testNow)

	assert.Equal(t, MsgStartTimeRequired, result[domain.FieldStartTime])
	assert.Equal(t, MsgEndTimeRequired, result[domain.FieldEndTime])
	assert.False(t, result.Has(domain.FieldTime))
	assert.False(t, result.Has(domain.FieldStartTimeAdvance))
}

func TestValidator_Overlap(t *testing.T) {
	v := newTestValidator()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	idx := domain.BuildAvailabilityIndex([]*domain.Booking{
		{ID: 7, VenueID: 1, Date: date, TimeSlot: "14:00:00", Status: domain.StatusApproved},
	})

	draft := validDraft()
	draft.StartTime = "13:00"
	draft.EndTime = "15:00"
	result := v.Validate(draft, idx, testNow)
	assert.Equal(t, MsgTimeOverlap, result[domain.FieldTime])

	draft.StartTime = "15:00"
	draft.EndTime = "16:00"
	result = v.Validate(draft, idx, testNow)
	assert.False(t, result.Has(domain.FieldTime))

	// Бронирование, заканчивающееся в 14:00, не пересекается с занятым часом 14
	draft.StartTime = "12:00"
	draft.EndTime = "14:00"
	result = v.Validate(draft, idx, testNow)
	assert.False(t, result.Has(domain.FieldTime))

	// Ошибка длительности важнее пересечения
	draft.StartTime = "08:00"
	draft.EndTime = "15:00"
	result = v.Validate(draft, idx, testNow)
	assert.Equal(t, "Duration cannot exceed 6 hours.", result[domain.FieldTime])
}

func TestValidator_AdvanceNotice(t *testing.T) {
	v := newTestValidator()
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "23 hours ahead", start: "09:00", end: "10:00", wantErr: true},
		{name: "exactly 24 hours", start: "10:00", end: "11:00"},
		{name: "24 hours and a minute", start: "10:01", end: "11:00"},
		{name: "later the same day", start: "15:00", end: "16:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			draft.Date = "2025-06-10"
			draft.StartTime = tt.start
			draft.EndTime = tt.end

			result := v.Validate(draft, nil, now)

			if tt.wantErr {
				assert.Equal(t, "Bookings must be made at least 24 hours before the event start.", result[domain.FieldStartTimeAdvance])
				return
			}
			assert.False(t, result.Has(domain.FieldStartTimeAdvance), "unexpected: %v", result)
		})
	}
}

func TestValidator_AdvanceNoticeUsesVenueLocation(t *testing.T) {
	manila := time.FixedZone("UTC+8", 8*3600)
	cfg := DefaultConfig()
	cfg.Location = manila
	v := NewValidator(cfg)

	// 2025-06-09 02:00 UTC это 10:00 в UTC+8
	now := time.Date(2025, 6, 9, 2, 0, 0, 0, time.UTC)
	draft := validDraft()
	draft.StartTime = "09:00"
	draft.EndTime = "10:00"

	result := v.Validate(draft, nil, now)

	assert.True(t, result.Has(domain.FieldStartTimeAdvance))
	assert.False(t, result.Has(domain.FieldDate))
}

func TestValidator_InvalidSelection(t *testing.T) {
	v := newTestValidator()

	draft := validDraft()
	draft.Date = "not a date"

	result := v.Validate(draft, nil, testNow)

	assert.Equal(t, MsgInvalidSelection, result[domain.FieldStartTimeAdvance])
	assert.Equal(t, MsgDateInvalid, result[domain.FieldDate])
}

func TestValidator_Attendees(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		attendees string
		wantMsg   string
	}{
		{attendees: "", wantMsg: MsgAttendeesRequired},
		{attendees: "0", wantMsg: MsgAttendeesNotPositive},
		{attendees: "-5", wantMsg: MsgAttendeesNotPositive},
		{attendees: "abc", wantMsg: MsgAttendeesNotPositive},
		{attendees: "NaN", wantMsg: MsgAttendeesNotPositive},
		{attendees: "Inf", wantMsg: MsgAttendeesNotPositive},
		{attendees: "1"},
		{attendees: "500"},
		{attendees: " 12 "},
	}

	for _, tt := range tests {
		t.Run("attendees="+tt.attendees, func(t *testing.T) {
			draft := validDraft()
			draft.Attendees = tt.attendees

			result := v.Validate(draft, nil, testNow)

			if tt.wantMsg == "" {
				assert.True(t, result.IsValid(), "unexpected: %v", result)
				return
			}
			assert.Equal(t, tt.wantMsg, result[domain.FieldAttendees])
		})
	}
}

func TestValidator_ReportsAllViolations(t *testing.T) {
	v := newTestValidator()

	result := v.Validate(domain.BookingDraft{StartTime: "10:00", EndTime: "09:00"}, nil, testNow)

	assert.Equal(t, []string{
		domain.FieldAttendees,
		domain.FieldDate,
		domain.FieldEventName,
		domain.FieldEventType,
		domain.FieldTime,
	}, result.Fields())
}

func TestValidator_Deterministic(t *testing.T) {
	v := newTestValidator()
	idx := indexWith("2025-06-10", "14:00", domain.StatusApproved)
	draft := validDraft()
	draft.StartTime = "13:00"
	draft.EndTime = "15:00"

	first := v.Validate(draft, idx, testNow)
	second := v.Validate(draft, idx, testNow)

	assert.Equal(t, first, second)
}

func TestParseAttendees(t *testing.T) {
	n, err := ParseAttendees(" 40 ")
	require.NoError(t, err)
	assert.Equal(t, 40, n)

	_, err = ParseAttendees("-1")
	assert.Error(t, err)

	_, err = ParseAttendees("many")
	assert.Error(t, err)
}
