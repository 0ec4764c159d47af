package submitter

import (
	"context"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/cache/history"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/bookingapi"
)

// BookingAPI клиент API бронирований
type BookingAPI interface {
	GetVenueBookings(ctx context.Context, venueID int64, from *time.Time) ([]*domain.Booking, error)
	CreateBooking(ctx context.Context, userID int64, req *bookingapi.CreateBookingRequest) (*domain.Booking, error)
}

// SlotValidator правила бронирования слотов
type SlotValidator interface {
	Validate(draft domain.BookingDraft, idx *domain.AvailabilityIndex, now time.Time) domain.ValidationResult
	ParseDate(raw string) (time.Time, error)
	AllowedStartHours(date time.Time, idx *domain.AvailabilityIndex) []int
	AllowedEndHours(date time.Time, startHour int, idx *domain.AvailabilityIndex) []int
	Location() *time.Location
}

// HistoryStore локальная история отправленных заявок
type HistoryStore interface {
	Append(ctx context.Context, userID int64, entry history.Entry) error
}

// Notifier рассылает уведомление "бронирование обновлено" открытым представлениям
type Notifier interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

// Now возвращает текущее время
func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}
