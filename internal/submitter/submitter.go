package submitter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/infra/cache/history"
	"github.com/m04kA/SMC-VenueBookingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

const bookedByYou = "You"

// Identity пользователь, от имени которого отправляется заявка
type Identity struct {
	UserID int64
}

// Result итог отправки: созданное бронирование либо ошибки по полям
type Result struct {
	Booking *domain.Booking
	Errors  domain.ValidationResult

	// SubmitErr заполнен, если заявку не принял сервер; сообщение лежит в Errors["submit"]
	SubmitErr *SubmissionError
}

// OK возвращает true, если бронирование создано
func (r *Result) OK() bool {
	return r.Booking != nil && r.Errors.IsValid()
}

// Submitter отправляет проверенные черновики в API бронирований
type Submitter struct {
	api          BookingAPI
	validator    SlotValidator
	history      HistoryStore
	notifier     Notifier
	timeProvider TimeProvider
	logger       Logger
}

// NewSubmitter создает отправитель; history и notifier необязательны
func NewSubmitter(api BookingAPI, validator SlotValidator, historyStore HistoryStore, notifier Notifier, logger Logger) *Submitter {
	return &Submitter{
		api:          api,
		validator:    validator,
		history:      historyStore,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Submit проверяет черновик, нормализует его и создаёт бронирование.
// Ошибка возвращается только при отсутствии пользователя или площадки;
// нарушения правил и отказ сервера приходят в Result.Errors.
func (s *Submitter) Submit(
	ctx context.Context,
	identity *Identity,
	venue *domain.Venue,
	draft domain.BookingDraft,
	idx *domain.AvailabilityIndex,
) (*Result, error) {
	if identity == nil || identity.UserID <= 0 {
		return nil, ErrAuthRequired
	}
	if venue == nil || venue.ID <= 0 {
		return nil, ErrVenueRequired
	}

	now := s.timeProvider.Now()
	if errs := s.validator.Validate(draft, idx, now); !errs.IsValid() {
		s.logger.Info("Submit: draft for venue=%d rejected locally: %v", venue.ID, errs.Fields())
		return &Result{Errors: errs}, nil
	}

	req, err := buildRequest(venue, draft)
	if err != nil {
		return s.failed(fmt.Errorf("build request: %w", err), MsgSubmitFailed), nil
	}

	created, err := s.api.CreateBooking(ctx, identity.UserID, req)
	if err != nil {
		s.logger.Warn("Submit: booking for venue=%d by user=%d failed: %v", venue.ID, identity.UserID, err)
		return s.rejected(err), nil
	}

	s.afterCreate(ctx, identity, venue, draft, req, created)

	s.logger.Info("Submit: booking id=%d created for venue=%d by user=%d", created.ID, venue.ID, identity.UserID)
	return &Result{Booking: created, Errors: domain.ValidationResult{}}, nil
}

// buildRequest собирает тело запроса с датой YYYY-MM-DD и временем HH:mm:00
func buildRequest(venue *domain.Venue, draft domain.BookingDraft) (*bookingapi.CreateBookingRequest, error) {
	date, err := NormalizeDate(draft.Date)
	if err != nil {
		return nil, err
	}
	start, err := NormalizeTimeSlot(draft.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := NormalizeTimeSlot(draft.EndTime)
	if err != nil {
		return nil, err
	}
	attendees, err := slots.ParseAttendees(draft.Attendees)
	if err != nil {
		return nil, err
	}

	return &bookingapi.CreateBookingRequest{
		EventName:   strings.TrimSpace(draft.EventName),
		Date:        date,
		TimeSlot:    start,
		EndTime:     end,
		Capacity:    attendees,
		Description: strings.TrimSpace(draft.Description),
		EventType:   draft.EventType,
		Status:      string(domain.StatusPending),
		Venue:       bookingapi.VenueRef{ID: venue.ID},
	}, nil
}

// rejected превращает отказ сервера в ошибки формы; сообщение сервера показывается как есть
func (s *Submitter) rejected(err error) *Result {
	var apiErr *bookingapi.APIError
	if !errors.As(err, &apiErr) {
		return s.failed(err, MsgSubmitFailed)
	}

	message := apiErr.Message
	if message == "" {
		message = MsgSubmitFailed
	}
	result := s.failed(err, message)
	for field, msg := range apiErr.Fields {
		if field != domain.FieldSubmit {
			result.Errors[field] = msg
		}
	}
	return result
}

func (s *Submitter) failed(err error, message string) *Result {
	subErr := &SubmissionError{Message: message, Err: err}
	return &Result{
		Errors:    domain.ValidationResult{domain.FieldSubmit: message},
		SubmitErr: subErr,
	}
}

// afterCreate обновляет локальную историю и рассылает уведомление; ошибки только логируются
func (s *Submitter) afterCreate(
	ctx context.Context,
	identity *Identity,
	venue *domain.Venue,
	draft domain.BookingDraft,
	req *bookingapi.CreateBookingRequest,
	created *domain.Booking,
) {
	if created.VenueID == 0 {
		created.VenueID = venue.ID
	}
	if created.Date.IsZero() {
		if date, err := s.validator.ParseDate(req.Date); err == nil {
			created.Date = date
		}
	}

	if s.history != nil {
		entry := summarize(venue, draft, req, created, s.timeProvider.Now())
		if err := s.history.Append(ctx, identity.UserID, entry); err != nil {
			s.logger.Warn("afterCreate: failed to append history for user=%d: %v", identity.UserID, err)
		}
	}

	if s.notifier != nil {
		event := domain.NewBookingEvent(domain.EventBookingCreated, created, s.timeProvider.Now())
		if err := s.notifier.Publish(ctx, event); err != nil {
			s.logger.Warn("afterCreate: failed to notify about booking id=%d: %v", created.ID, err)
		}
	}
}

// summarize строит запись истории по отправленной заявке
func summarize(
	venue *domain.Venue,
	draft domain.BookingDraft,
	req *bookingapi.CreateBookingRequest,
	created *domain.Booking,
	now time.Time,
) history.Entry {
	status := created.Status
	if status == "" {
		status = domain.StatusPending
	}

	eventDate := req.Date
	if !created.Date.IsZero() {
		eventDate = created.Date.Format(domain.DisplayDateFormat)
	}

	return history.Entry{
		BookingID:  created.ID,
		VenueID:    venue.ID,
		VenueName:  venue.Name,
		EventName:  req.EventName,
		EventDate:  eventDate,
		Duration:   slots.FormatRange(types.TimeString(draft.StartTime), types.TimeString(draft.EndTime)),
		Guests:     fmt.Sprintf("%d pax", req.Capacity),
		BookedBy:   bookedByYou,
		Status:     string(status),
		RecordedAt: now,
	}
}
