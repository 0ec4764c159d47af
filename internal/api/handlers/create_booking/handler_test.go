package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	createBooking "github.com/m04kA/SMC-VenueBookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	got  *createBooking.Request
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const body = `{
	"eventName": "Orientation",
	"date": "2025-06-10",
	"timeSlot": "13:00:00",
	"endTime": "15:00:00",
	"capacity": 40,
	"description": "Freshmen",
	"eventType": "Seminar",
	"status": "approved",
	"venue": {"id": 1}
}`

func serve(t *testing.T, uc *fakeUseCase, userID int64, payload string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	if userID > 0 {
		r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	}
	w := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		Booking: &domain.Booking{
			ID:        100,
			UserID:    3,
			VenueID:   1,
			EventName: "Orientation",
			EventType: domain.EventTypeSeminar,
			Date:      time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			TimeSlot:  "13:00",
			Capacity:  40,
			Status:    domain.StatusPending,
		},
		Venue: &domain.Venue{ID: 1},
	}}

	w := serve(t, uc, 3, body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(3), uc.got.UserID)
	assert.Equal(t, int64(1), uc.got.VenueID)
	assert.Equal(t, "40", uc.got.Draft.Attendees)
	assert.Equal(t, "13:00:00", uc.got.Draft.StartTime)
	assert.Equal(t, "15:00:00", uc.got.Draft.EndTime)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(100), resp["id"])
	assert.Equal(t, "pending", resp["status"])
	assert.Equal(t, "2025-06-10", resp["date"])
}

func TestHandle_ValidationErrors(t *testing.T) {
	uc := &fakeUseCase{err: &createBooking.ValidationError{Fields: domain.ValidationResult{
		domain.FieldTime: "This time slot overlaps with an existing booking.",
	}}}

	w := serve(t, uc, 3, body)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "This time slot overlaps with an existing booking.", resp.Errors["time"])
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		userID     int64
		payload    string
		err        error
		wantStatus int
	}{
		{name: "no user", payload: body, wantStatus: http.StatusUnauthorized},
		{name: "broken body", userID: 3, payload: "{", wantStatus: http.StatusBadRequest},
		{name: "no venue", userID: 3, payload: `{"eventName":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "venue not found", userID: 3, payload: body, err: createBooking.ErrVenueNotFound, wantStatus: http.StatusNotFound},
		{name: "user not found", userID: 3, payload: body, err: createBooking.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", userID: 3, payload: body, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, &fakeUseCase{err: tt.err}, tt.userID, tt.payload)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

type memBookingRepo struct{ created []*domain.Booking }

func (r *memBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	b.ID = int64(len(r.created) + 1)
	r.created = append(r.created, b)
	return b, nil
}

func (r *memBookingRepo) GetByVenueWithFilter(ctx context.Context, f domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

type memVenueRepo struct{}

func (memVenueRepo) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	return &domain.Venue{ID: id, Name: "NGE 101", Capacity: 100}, nil
}

type memUserRepo struct{}

func (memUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, Role: domain.RoleStudent}, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, e domain.BookingEvent) error { return nil }

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestHandle_BodyWithoutEndTimeBooksOneHour(t *testing.T) {
	cfg := slots.DefaultConfig()
	cfg.Location = time.UTC
	repo := &memBookingRepo{}
	uc := createBooking.NewUseCase(repo, memVenueRepo{}, memUserRepo{}, slots.NewValidator(cfg), nopPublisher{}, inlineTx{}, nopLogger{})

	date := time.Now().UTC().AddDate(0, 0, 10).Format(domain.DateFormat)
	payload := `{
		"eventName": "Orientation",
		"date": "` + date + `",
		"timeSlot": "13:00:00",
		"capacity": 40,
		"description": "Freshmen",
		"eventType": "Seminar",
		"status": "pending",
		"venue": {"id": 1}
	}`

	r := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(payload))
	r = r.WithContext(middleware.WithUserID(r.Context(), 3))
	w := httptest.NewRecorder()
	NewHandler(uc, nopLogger{}).Handle(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, repo.created, 1)
	assert.Equal(t, "13:00", repo.created[0].TimeSlot.String())
	assert.Equal(t, "14:00", repo.created[0].EndTime.String())
}
