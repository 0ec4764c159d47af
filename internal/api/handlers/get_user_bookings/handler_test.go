package get_user_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-VenueBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/bookings/models"
)

type fakeService struct {
	got *models.GetUserBookingsRequest
}

func (f *fakeService) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1, UserID: req.UserID}}}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func serve(svc *fakeService, pathUser string, caller int64, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+pathUser+"/bookings"+query, nil)
	r = mux.SetURLVars(r, map[string]string{"userId": pathUser})
	r = r.WithContext(middleware.WithUserID(r.Context(), caller))
	w := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(w, r)
	return w
}

func TestHandle_OwnBookings(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "3", 3, "?status=pending")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "pending", *svc.got.Status)
	assert.Contains(t, w.Body.String(), `"bookings":[`)
}

func TestHandle_OtherUserForbidden(t *testing.T) {
	svc := &fakeService{}

	w := serve(svc, "4", 3, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, svc.got)
}
