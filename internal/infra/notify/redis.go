package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// RedisPublisher публикует события бронирований в канал Redis Pub/Sub
type RedisPublisher struct {
	client  RedisClient
	channel string
	logger  Logger
}

// NewRedisPublisher создает публикатор для канала channel
func NewRedisPublisher(client RedisClient, channel string, logger Logger) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Publish отправляет событие в канал в виде JSON
func (p *RedisPublisher) Publish(ctx context.Context, event domain.BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: Publish - marshal %s: %v", ErrEncodeEvent, event.Type, err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("%w: Publish - channel %s: %v", ErrPublish, p.channel, err)
	}

	p.logger.Info("Publish: %s for booking id=%d delivered to %d subscribers", event.Type, event.BookingID, receivers)
	return nil
}

// DecodeEvent разбирает сообщение, полученное из канала
func DecodeEvent(payload string) (domain.BookingEvent, error) {
	var event domain.BookingEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return domain.BookingEvent{}, fmt.Errorf("%w: DecodeEvent: %v", ErrEncodeEvent, err)
	}
	return event, nil
}
