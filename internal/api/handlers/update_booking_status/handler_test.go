package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

type fakeService struct {
	got *models.UpdateStatusRequest
	err error
}

func (f *fakeService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: req.Status}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, payload string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/5/status", strings.NewReader(payload))
	r = mux.SetURLVars(r, map[string]string{"bookingId": "5"})
	r = r.WithContext(middleware.WithUserID(r.Context(), 9))
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_Approve(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, `{"status":"approved"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(9), svc.got.UserID)
	assert.Equal(t, "approved", svc.got.Status)
	assert.Contains(t, w.Body.String(), `"status":"approved"`)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{err: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{err: fmt.Errorf("%w: hour 14 is taken", bookings.ErrSlotConflict), wantStatus: http.StatusConflict},
		{err: bookings.ErrInvalidStatus, wantStatus: http.StatusUnprocessableEntity},
		{err: bookings.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, `{"status":"approved"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
