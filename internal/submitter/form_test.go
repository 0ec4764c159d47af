package submitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/bookingapi"
)

var bookedDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func newTestForm(api *fakeAPI) *Form {
	validator := testValidator()
	sub := NewSubmitter(api, validator, &fakeHistory{}, &fakeNotifier{}, nopLogger{})
	sub.timeProvider = fixedTime{now: testNow}

	form := NewForm(testVenue, &Identity{UserID: 3}, api, validator, sub, nopLogger{})
	form.timeProvider = fixedTime{now: testNow}
	form.resetDraft()
	return form
}

func fillDraft(f *Form) {
	f.SetDate("2025-06-12")
	f.SetEventName("Orientation")
	f.SetEventType("Seminar")
	f.SetStartTime("13:00")
	f.SetEndTime("15:00")
	f.SetAttendees("40")
}

func TestForm_Defaults(t *testing.T) {
	form := newTestForm(&fakeAPI{})

	state := form.State()

	assert.NotEqual(t, uuid.Nil, state.DraftID)
	assert.Equal(t, "2025-06-02", state.Draft.Date)
	assert.Equal(t, "09:00", state.Draft.StartTime)
	assert.Equal(t, "10:00", state.Draft.EndTime)
	assert.False(t, state.AvailabilityLoaded)
	assert.Empty(t, state.UnavailableDates)
}

func TestForm_SubmitRequiresAvailability(t *testing.T) {
	api := &fakeAPI{}
	form := newTestForm(api)
	fillDraft(form)

	_, err := form.Submit(context.Background())

	assert.ErrorIs(t, err, ErrAvailabilityUnknown)
	assert.Empty(t, api.createReqs)
}

func TestForm_LoadAvailabilityAndReconcile(t *testing.T) {
	api := &fakeAPI{bookings: []*domain.Booking{
		{ID: 1, VenueID: 1, Date: bookedDate, TimeSlot: "11:00:00", Status: domain.StatusApproved},
	}}
	form := newTestForm(api)

	require.NoError(t, form.LoadAvailability(context.Background()))

	form.SetDate("2025-06-10")
	form.SetStartTime("10:00")

	state := form.State()
	assert.True(t, state.AvailabilityLoaded)
	assert.Equal(t, []string{"2025-06-10"}, state.UnavailableDates)
	assert.NotContains(t, state.AllowedStartHours, 11)
	assert.Equal(t, []int{12, 13, 14, 15, 16}, state.AllowedEndHours)
	assert.Equal(t, "12:00", state.Draft.EndTime)

	// Допустимое время окончания сохраняется
	form.SetEndTime("14:00")
	form.SetDate("2025-06-11")
	assert.Equal(t, "14:00", form.State().Draft.EndTime)

	// Время начала после окончания сдвигает окончание
	form.SetStartTime("15:00")
	assert.Equal(t, "16:00", form.State().Draft.EndTime)
}

func TestForm_SetDateReconcilesStartTime(t *testing.T) {
	api := &fakeAPI{bookings: []*domain.Booking{
		{ID: 1, VenueID: 1, Date: bookedDate, TimeSlot: "09:00", Status: domain.StatusApproved},
	}}
	form := newTestForm(api)
	require.NoError(t, form.LoadAvailability(context.Background()))

	// 09:00 занят на новую дату: начало сдвигается на первый свободный час
	form.SetDate("2025-06-10")

	state := form.State()
	assert.Equal(t, "07:00", state.Draft.StartTime)
	assert.Contains(t, state.AllowedStartHours, 7)
	assert.NotContains(t, state.AllowedStartHours, 9)
	assert.Contains(t, state.AllowedEndHours, 10)
	assert.Equal(t, "10:00", state.Draft.EndTime)

	// Свободное начало сохраняется
	form.SetStartTime("13:00")
	form.SetDate("2025-06-11")
	assert.Equal(t, "13:00", form.State().Draft.StartTime)
}

func TestForm_InvalidStartClearsEndTime(t *testing.T) {
	form := newTestForm(&fakeAPI{})
	form.SetDate("2025-06-12")
	require.Equal(t, "10:00", form.State().Draft.EndTime)

	form.SetStartTime("1pm")

	state := form.State()
	assert.Equal(t, "1pm", state.Draft.StartTime)
	assert.Empty(t, state.Draft.EndTime)
	assert.Empty(t, state.AllowedEndHours)
}

func TestForm_SetEndTimeOutsideAllowedHours(t *testing.T) {
	tests := []struct {
		name string
		end  string
		want string
	}{
		{name: "allowed", end: "17:00", want: "17:00"},
		{name: "longer than max duration", end: "21:00", want: "14:00"},
		{name: "before start", end: "12:00", want: "14:00"},
		{name: "not on the hour", end: "15:30", want: "14:00"},
		{name: "empty", end: "", want: "14:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := newTestForm(&fakeAPI{})
			form.SetDate("2025-06-12")
			form.SetStartTime("13:00")

			form.SetEndTime(tt.end)

			state := form.State()
			assert.Equal(t, tt.want, state.Draft.EndTime)
			assert.Equal(t, []int{14, 15, 16, 17, 18, 19}, state.AllowedEndHours)
		})
	}
}

func TestForm_UnparseableDateKeepsTimes(t *testing.T) {
	form := newTestForm(&fakeAPI{})
	form.SetStartTime("13:00")
	form.SetEndTime("15:00")

	form.SetDate("soon")
	form.SetEndTime("21:00")

	state := form.State()
	assert.Equal(t, "13:00", state.Draft.StartTime)
	assert.Equal(t, "21:00", state.Draft.EndTime)
	assert.Empty(t, state.AllowedStartHours)
}

func TestForm_LoadFailureKeepsPreviousIndex(t *testing.T) {
	api := &fakeAPI{bookings: []*domain.Booking{
		{ID: 1, VenueID: 1, Date: bookedDate, TimeSlot: "11:00", Status: domain.StatusPending},
	}}
	form := newTestForm(api)
	require.NoError(t, form.LoadAvailability(context.Background()))

	api.bookings = nil
	api.listErr = errors.New("timeout")
	err := form.LoadAvailability(context.Background())

	assert.Error(t, err)
	state := form.State()
	assert.True(t, state.AvailabilityLoaded)
	assert.False(t, state.Loading)
	assert.Equal(t, []string{"2025-06-10"}, state.UnavailableDates)
}

func TestForm_SubmitSuccessResetsDraftAndRefetches(t *testing.T) {
	api := &fakeAPI{}
	form := newTestForm(api)
	require.NoError(t, form.LoadAvailability(context.Background()))
	fillDraft(form)
	before := form.State().DraftID

	res, err := form.Submit(context.Background())

	require.NoError(t, err)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	state := form.State()
	assert.NotEqual(t, before, state.DraftID)
	assert.Empty(t, state.Draft.EventName)
	assert.Equal(t, "2025-06-02", state.Draft.Date)
	assert.Empty(t, state.Errors)
	assert.Equal(t, 2, api.listCalls)
}

func TestForm_SubmitFailureKeepsDraftEditable(t *testing.T) {
	api := &fakeAPI{createErr: &bookingapi.APIError{StatusCode: 409, Message: "Venue already booked."}}
	form := newTestForm(api)
	require.NoError(t, form.LoadAvailability(context.Background()))
	fillDraft(form)
	before := form.State()

	res, err := form.Submit(context.Background())

	require.NoError(t, err)
	assert.False(t, res.OK())
	state := form.State()
	assert.Equal(t, before.DraftID, state.DraftID)
	assert.Equal(t, before.Draft, state.Draft)
	assert.Equal(t, "Venue already booked.", state.Errors[domain.FieldSubmit])
	assert.False(t, state.Submitting)
	assert.Equal(t, 1, api.listCalls)

	form.SetEventName("Orientation v2")
	assert.Equal(t, "Orientation v2", form.State().Draft.EventName)
}

func TestForm_RejectsSecondSubmitWhileInFlight(t *testing.T) {
	api := &fakeAPI{
		createGate:    make(chan struct{}),
		createStarted: make(chan struct{}, 1),
	}
	form := newTestForm(api)
	require.NoError(t, form.LoadAvailability(context.Background()))
	fillDraft(form)

	done := make(chan *Result, 1)
	go func() {
		res, _ := form.Submit(context.Background())
		done <- res
	}()
	<-api.createStarted

	assert.True(t, form.State().Submitting)
	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInProgress)

	close(api.createGate)
	res := <-done
	require.NotNil(t, res)
	assert.True(t, res.OK())
	assert.Len(t, api.createReqs, 1)
}

func TestForm_DiscardsResultAfterClose(t *testing.T) {
	api := &fakeAPI{
		bookings: []*domain.Booking{
			{ID: 1, VenueID: 1, Date: bookedDate, TimeSlot: "11:00", Status: domain.StatusApproved},
		},
		listGate:    make(chan struct{}),
		listStarted: make(chan struct{}, 1),
	}
	form := newTestForm(api)

	done := make(chan error, 1)
	go func() { done <- form.LoadAvailability(context.Background()) }()
	<-api.listStarted

	form.Close()
	close(api.listGate)

	assert.NoError(t, <-done)
	state := form.State()
	assert.False(t, state.AvailabilityLoaded)
	assert.Empty(t, state.UnavailableDates)

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFormClosed)
	assert.ErrorIs(t, form.LoadAvailability(context.Background()), ErrFormClosed)
}

func TestForm_SupersededLoadIsDiscarded(t *testing.T) {
	api := &fakeAPI{
		bookings:    []*domain.Booking{{ID: 1, VenueID: 1, Date: bookedDate, TimeSlot: "11:00", Status: domain.StatusApproved}},
		listGate:    make(chan struct{}),
		listStarted: make(chan struct{}, 2),
	}
	form := newTestForm(api)

	first := make(chan error, 1)
	go func() { first <- form.LoadAvailability(context.Background()) }()
	<-api.listStarted

	second := make(chan error, 1)
	go func() { second <- form.LoadAvailability(context.Background()) }()
	<-api.listStarted

	close(api.listGate)
	assert.NoError(t, <-first)
	assert.NoError(t, <-second)

	state := form.State()
	assert.True(t, state.AvailabilityLoaded)
	assert.False(t, state.Loading)
}
