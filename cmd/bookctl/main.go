package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-VenueBookingService/internal/config"
	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/cache/history"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/notify"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	"github.com/m04kA/SMC-VenueBookingService/internal/submitter"
	"github.com/m04kA/SMC-VenueBookingService/pkg/logger"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

const (
	usage = `Usage: bookctl [-config config.toml] [-v] <command> [flags]

Commands:
  venues                                 list venues
  availability -venue ID [-date D] [-start HH:MM]
                                         unavailable dates and allowed hours
  book -venue ID -user ID -date D -start HH:MM -end HH:MM
       -name NAME -type TYPE -attendees N [-desc TEXT]
                                         validate and submit a booking
  history -user ID                       bookings submitted from this machine
  watch [-venue ID]                      print booking events as they happen
`
)

// HistoryStore хранилище истории, используемое CLI
type HistoryStore interface {
	Append(ctx context.Context, userID int64, entry history.Entry) error
	List(ctx context.Context, userID int64) ([]history.Entry, error)
}

// Notifier уведомления о созданных бронированиях
type Notifier interface {
	Publish(ctx context.Context, event domain.BookingEvent) error
}

type app struct {
	cfg       *config.Config
	log       *logger.Logger
	api       *bookingapi.Client
	validator *slots.Validator
	history   HistoryStore
	notifier  Notifier
	redis     *redis.Client
}

func main() {
	fs := flag.NewFlagSet("bookctl", flag.ExitOnError)
	configPath := fs.String("config", "config.toml", "path to config file")
	verbose := fs.Bool("v", false, "verbose logging")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := "error"
	if *verbose {
		level = "debug"
	}
	log, err := logger.New("", level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	slotsCfg, err := cfg.Booking.SlotsConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid booking rules: %v\n", err)
		os.Exit(1)
	}

	a := &app{
		cfg:       cfg,
		log:       log,
		api:       bookingapi.NewClient(cfg.BookingAPI.URL, time.Duration(cfg.BookingAPI.Timeout)*time.Second, log),
		validator: slots.NewValidator(slotsCfg),
		history:   history.NewMemoryStore(domain.MaxHistoryEntries),
		notifier:  notify.NewLogPublisher(log),
	}

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		a.redis = client

		ttl := time.Duration(cfg.Redis.HistoryTTLHours) * time.Hour
		a.history = history.NewRedisStore(client, domain.MaxHistoryEntries, ttl)
		a.notifier = notify.NewRedisPublisher(client, cfg.Redis.EventsChannel, log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, args := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "venues":
		err = a.venues(ctx)
	case "availability":
		err = a.availability(ctx, args)
	case "book":
		err = a.book(ctx, args)
	case "history":
		err = a.listHistory(ctx, args)
	case "watch":
		err = a.watch(ctx, args)
	default:
		fs.Usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func (a *app) venues(ctx context.Context) error {
	venues, err := a.api.ListVenues(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCODE\tNAME\tBUILDING\tCAPACITY")
	for _, v := range venues {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", v.ID, v.Code, v.Name, v.Building, v.Capacity)
	}
	return tw.Flush()
}

func (a *app) availability(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("availability", flag.ContinueOnError)
	venueID := fs.Int64("venue", 0, "venue ID")
	date := fs.String("date", "", "date (YYYY-MM-DD), defaults to tomorrow")
	start := fs.String("start", "", "start time to list end hours for")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := a.openForm(ctx, *venueID, 0)
	if err != nil {
		return err
	}
	defer form.Close()

	if *date != "" {
		form.SetDate(*date)
	}
	if *start != "" {
		form.SetStartTime(*start)
	}

	state := form.State()
	fmt.Printf("Unavailable dates: %s\n", joinOrNone(state.UnavailableDates))
	fmt.Printf("Start hours on %s: %s\n", state.Draft.Date, formatHours(state.AllowedStartHours))
	fmt.Printf("End hours after %s: %s\n", state.Draft.StartTime, formatHours(state.AllowedEndHours))
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	venueID := fs.Int64("venue", 0, "venue ID")
	userID := fs.Int64("user", 0, "user ID sent as X-User-ID")
	date := fs.String("date", "", "event date")
	start := fs.String("start", "", "start time HH:MM")
	end := fs.String("end", "", "end time HH:MM")
	name := fs.String("name", "", "event name")
	eventType := fs.String("type", "", "event type: "+eventTypesList())
	attendees := fs.String("attendees", "", "number of attendees")
	desc := fs.String("desc", "", "description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form, err := a.openForm(ctx, *venueID, *userID)
	if err != nil {
		return err
	}
	defer form.Close()

	form.SetDate(*date)
	form.SetStartTime(*start)
	form.SetEndTime(*end)
	form.SetEventName(*name)
	form.SetEventType(*eventType)
	form.SetAttendees(*attendees)
	form.SetDescription(*desc)

	result, err := form.Submit(ctx)
	if err != nil {
		return err
	}
	if !result.OK() {
		printErrors(result.Errors)
		return errors.New("booking was not created")
	}

	b := result.Booking
	fmt.Printf("Booking #%d created: %s on %s, %s (status %s)\n",
		b.ID, b.EventName, domain.DateKey(b.Date), slots.FormatRange(b.TimeSlot, endOf(b)), b.Status)
	return nil
}

func (a *app) listHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	userID := fs.Int64("user", 0, "user ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID <= 0 {
		return submitter.ErrAuthRequired
	}
	if !a.cfg.Redis.Enabled {
		fmt.Println("History is kept in redis; enable [redis] in the config to keep it between runs.")
	}

	entries, err := a.history.List(ctx, *userID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVENUE\tEVENT\tDATE\tTIME\tGUESTS\tSTATUS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.BookingID, e.VenueName, e.EventName, e.EventDate, e.Duration, e.Guests, e.Status)
	}
	return tw.Flush()
}

// openForm загружает площадку и её занятость; userID 0 допустим для просмотра
func (a *app) openForm(ctx context.Context, venueID, userID int64) (*submitter.Form, error) {
	if venueID <= 0 {
		return nil, submitter.ErrVenueRequired
	}

	venue, err := a.api.GetVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	var identity *submitter.Identity
	if userID > 0 {
		identity = &submitter.Identity{UserID: userID}
	}

	sub := submitter.NewSubmitter(a.api, a.validator, a.history, a.notifier, a.log)
	form := submitter.NewForm(venue, identity, a.api, a.validator, sub, a.log)
	if err := form.LoadAvailability(ctx); err != nil {
		form.Close()
		return nil, fmt.Errorf("load availability for %s: %w", venue.Name, err)
	}
	return form, nil
}

func printErrors(errs domain.ValidationResult) {
	for _, field := range errs.Fields() {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, errs[field])
	}
}

func formatHours(hours []int) string {
	if len(hours) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(hours))
	for _, opt := range slots.HourOptions(hours) {
		labels = append(labels, opt.Label)
	}
	return strings.Join(labels, ", ")
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func eventTypesList() string {
	names := make([]string, 0, len(domain.EventTypes))
	for _, et := range domain.EventTypes {
		names = append(names, string(et))
	}
	return strings.Join(names, ", ")
}

func endOf(b *domain.Booking) types.TimeString {
	if b.EndTime != "" {
		return b.EndTime
	}
	return types.FromHour(b.EndHour())
}
