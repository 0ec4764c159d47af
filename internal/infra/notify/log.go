package notify

import (
	"context"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// LogPublisher пишет события в лог; используется, когда Redis выключен
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создает публикатор в лог
func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish записывает событие в лог и никогда не возвращает ошибку
func (p *LogPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	p.logger.Info("booking event %s: booking id=%d venue=%d user=%d date=%s status=%s",
		event.Type, event.BookingID, event.VenueID, event.UserID, event.Date, event.Status)
	return nil
}
