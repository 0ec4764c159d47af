package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-VenueBookingService/internal/infra/notify"
)

// eventLogger предупреждения о нераспознанных сообщениях
type eventLogger interface {
	Warn(format string, v ...interface{})
}

func (a *app) watch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	venueID := fs.Int64("venue", 0, "only events for this venue")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.redis == nil {
		return errors.New("booking events are published to redis; enable [redis] in the config")
	}

	sub := a.redis.Subscribe(ctx, a.cfg.Redis.EventsChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", a.cfg.Redis.EventsChannel, err)
	}

	fmt.Printf("Watching %s, press Ctrl+C to stop\n", a.cfg.Redis.EventsChannel)
	return printEvents(ctx, sub.Channel(), *venueID, os.Stdout, a.log)
}

// printEvents печатает события до закрытия канала или отмены контекста.
// venueID 0 означает все площадки.
func printEvents(ctx context.Context, msgs <-chan *redis.Message, venueID int64, w io.Writer, log eventLogger) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			event, err := notify.DecodeEvent(msg.Payload)
			if err != nil {
				log.Warn("watch: skipping message on %s: %v", msg.Channel, err)
				continue
			}
			if venueID > 0 && event.VenueID != venueID {
				continue
			}
			fmt.Fprintf(w, "%s  %-22s booking #%d venue %d on %s by user %d (%s)\n",
				event.OccurredAt.Format("15:04:05"), event.Type, event.BookingID,
				event.VenueID, event.Date, event.UserID, event.Status)
		}
	}
}
