package submitter

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// FormState снимок состояния формы для отображения
type FormState struct {
	DraftID            uuid.UUID
	Draft              domain.BookingDraft
	Errors             domain.ValidationResult
	Loading            bool
	Submitting         bool
	AvailabilityLoaded bool
	UnavailableDates   []string
	AllowedStartHours  []int
	AllowedEndHours    []int
}

// Form состояние формы бронирования одной площадки.
// Индекс занятости пересобирается целиком после каждой загрузки;
// результаты, пришедшие после Close или более новой загрузки, отбрасываются.
type Form struct {
	mu sync.Mutex

	api          BookingAPI
	validator    SlotValidator
	submitter    *Submitter
	timeProvider TimeProvider
	logger       Logger

	identity *Identity
	venue    *domain.Venue

	draftID    uuid.UUID
	draft      domain.BookingDraft
	errors     domain.ValidationResult
	index      *domain.AvailabilityIndex
	loaded     bool
	loading    bool
	submitting bool
	closed     bool
	generation uint64
}

// NewForm создает форму с черновиком по умолчанию: завтра, 09:00-10:00
func NewForm(
	venue *domain.Venue,
	identity *Identity,
	api BookingAPI,
	validator SlotValidator,
	submitter *Submitter,
	logger Logger,
) *Form {
	f := &Form{
		api:          api,
		validator:    validator,
		submitter:    submitter,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		identity:     identity,
		venue:        venue,
	}
	f.resetDraft()
	return f
}

// LoadAvailability загружает бронирования площадки и пересобирает индекс.
// При ошибке прежний индекс сохраняется.
func (f *Form) LoadAvailability(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFormClosed
	}
	f.generation++
	gen := f.generation
	f.loading = true
	from := domain.CalendarDay(f.timeProvider.Now().In(f.validator.Location()))
	f.mu.Unlock()

	bookings, err := f.api.GetVenueBookings(ctx, f.venue.ID, &from)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || gen != f.generation {
		f.logger.Info("LoadAvailability: discarding stale result for venue=%d", f.venue.ID)
		return nil
	}
	f.loading = false

	if err != nil {
		f.logger.Warn("LoadAvailability: failed to load bookings for venue=%d: %v", f.venue.ID, err)
		return err
	}

	f.index = domain.BuildAvailabilityIndex(bookings)
	f.loaded = true
	f.reconcileTimes(false)
	return nil
}

// Close отключает форму; загрузки в полёте больше не меняют состояние
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.generation++
	f.loading = false
}

// SetDate меняет дату и согласует время начала и окончания
func (f *Form) SetDate(date string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft.Date = date
	f.reconcileTimes(true)
}

// SetStartTime меняет время начала и согласует время окончания
func (f *Form) SetStartTime(start string) {
	f.update(func(d *domain.BookingDraft) { d.StartTime = start }, true)
}

// SetEndTime меняет время окончания; значение вне допустимого списка
// заменяется первым допустимым
func (f *Form) SetEndTime(end string) {
	f.update(func(d *domain.BookingDraft) { d.EndTime = end }, true)
}

// SetEventName меняет название события
func (f *Form) SetEventName(name string) {
	f.update(func(d *domain.BookingDraft) { d.EventName = name }, false)
}

// SetEventType меняет тип события
func (f *Form) SetEventType(eventType string) {
	f.update(func(d *domain.BookingDraft) { d.EventType = eventType }, false)
}

// SetAttendees меняет количество участников
func (f *Form) SetAttendees(attendees string) {
	f.update(func(d *domain.BookingDraft) { d.Attendees = attendees }, false)
}

// SetDescription меняет описание
func (f *Form) SetDescription(description string) {
	f.update(func(d *domain.BookingDraft) { d.Description = description }, false)
}

// Validate проверяет черновик и запоминает ошибки
func (f *Form) Validate() domain.ValidationResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errors = f.validator.Validate(f.draft, f.index, f.timeProvider.Now())
	return copyResult(f.errors)
}

// Submit отправляет черновик. Вторая отправка во время первой отклоняется,
// как и отправка до первой успешной загрузки занятости.
// После успеха черновик сбрасывается, а занятость загружается заново.
func (f *Form) Submit(ctx context.Context) (*Result, error) {
	f.mu.Lock()
	switch {
	case f.closed:
		f.mu.Unlock()
		return nil, ErrFormClosed
	case f.submitting:
		f.mu.Unlock()
		return nil, ErrSubmissionInProgress
	case !f.loaded:
		f.mu.Unlock()
		return nil, ErrAvailabilityUnknown
	}
	f.submitting = true
	draft := f.draft
	idx := f.index
	f.mu.Unlock()

	result, err := f.submitter.Submit(ctx, f.identity, f.venue, draft, idx)

	f.mu.Lock()
	f.submitting = false
	if f.closed || err != nil {
		f.mu.Unlock()
		return result, err
	}
	f.errors = copyResult(result.Errors)
	ok := result.OK()
	if ok {
		f.resetDraft()
	}
	f.mu.Unlock()

	if ok {
		if err := f.LoadAvailability(ctx); err != nil && !errors.Is(err, ErrFormClosed) {
			f.logger.Warn("Submit: failed to refresh availability after booking id=%d: %v", result.Booking.ID, err)
		}
	}
	return result, nil
}

// State возвращает снимок состояния формы
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := FormState{
		DraftID:            f.draftID,
		Draft:              f.draft,
		Errors:             copyResult(f.errors),
		Loading:            f.loading,
		Submitting:         f.submitting,
		AvailabilityLoaded: f.loaded,
		UnavailableDates:   f.index.UnavailableDates(),
	}

	if date, err := f.validator.ParseDate(f.draft.Date); err == nil {
		state.AllowedStartHours = f.validator.AllowedStartHours(date, f.index)
		if start, err := types.TimeString(f.draft.StartTime).Hour(); err == nil {
			state.AllowedEndHours = f.validator.AllowedEndHours(date, start, f.index)
		}
	}
	return state
}

func (f *Form) update(apply func(d *domain.BookingDraft), reconcile bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	apply(&f.draft)
	if reconcile {
		f.reconcileTimes(false)
	}
}

// reconcileTimes держит время окончания (и при withStart время начала) внутри списков
// допустимых часов; вызывается под mu. Пока дата не разобрана, списков нет
// и значения остаются как введены.
func (f *Form) reconcileTimes(withStart bool) {
	date, err := f.validator.ParseDate(f.draft.Date)
	if err != nil {
		return
	}
	if withStart {
		starts := f.validator.AllowedStartHours(date, f.index)
		f.draft.StartTime = slots.ReconcileStartTime(f.draft.StartTime, starts)
	}
	start, err := types.TimeString(f.draft.StartTime).Hour()
	if err != nil {
		f.draft.EndTime = ""
		return
	}
	allowed := f.validator.AllowedEndHours(date, start, f.index)
	f.draft.EndTime = slots.ReconcileEndTime(f.draft.EndTime, allowed)
}

// resetDraft вызывается под mu
func (f *Form) resetDraft() {
	f.draftID = uuid.New()
	f.draft = domain.NewBookingDraft(f.timeProvider.Now().In(f.validator.Location()))
	f.errors = domain.ValidationResult{}
}

func copyResult(r domain.ValidationResult) domain.ValidationResult {
	out := make(domain.ValidationResult, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
