package slots

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// Validator проверяет черновик бронирования по правилам площадки.
// Результат зависит только от черновика, индекса занятости и переданного now.
type Validator struct {
	cfg Config
}

// NewValidator создает валидатор, незаданные поля конфигурации берутся по умолчанию
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg.withDefaults()}
}

// Config возвращает действующие правила
func (v *Validator) Config() Config {
	return v.cfg
}

// Location возвращает часовой пояс, в котором трактуются дата и время черновика
func (v *Validator) Location() *time.Location {
	return v.cfg.Location
}

// ParseDate разбирает дату черновика по календарным компонентам
func (v *Validator) ParseDate(raw string) (time.Time, error) {
	return domain.ParseCalendarDate(raw, v.cfg.Location)
}

// Validate проверяет все правила и возвращает по одному сообщению на поле.
// Правила не прерывают друг друга: сообщаются все нарушения сразу.
func (v *Validator) Validate(draft domain.BookingDraft, idx *domain.AvailabilityIndex, now time.Time) domain.ValidationResult {
	result := make(domain.ValidationResult)
	now = now.In(v.cfg.Location)

	date, dateOK := v.validateDate(draft.Date, idx, now, result)
	v.validateEvent(draft, result)

	start, startOK := parseSelectedTime(draft.StartTime)
	if !startOK {
		result[domain.FieldStartTime] = MsgStartTimeRequired
	}
	end, endOK := parseSelectedTime(draft.EndTime)
	if !endOK {
		result[domain.FieldEndTime] = MsgEndTimeRequired
	}

	if startOK && endOK {
		v.validateRange(date, dateOK, start, end, idx, result)
	}

	v.validateNotice(draft, date, dateOK, start, startOK, now, result)
	validateAttendees(draft.Attendees, result)

	return result
}

// validateDate правила даты: задана, не раньше завтрашнего дня, не занята
func (v *Validator) validateDate(raw string, idx *domain.AvailabilityIndex, now time.Time, result domain.ValidationResult) (time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		result[domain.FieldDate] = MsgDateRequired
		return time.Time{}, false
	}

	date, err := v.ParseDate(raw)
	if err != nil {
		result[domain.FieldDate] = MsgDateInvalid
		return time.Time{}, false
	}

	// Сравниваем календарные даты, а не смещение в 24 часа
	if date.Before(domain.Tomorrow(now)) {
		result[domain.FieldDate] = MsgDateNotFuture
	} else if idx.IsDateUnavailable(date) {
		result[domain.FieldDate] = MsgDateBooked
	}

	return date, true
}

// validateEvent правила названия и типа события
func (v *Validator) validateEvent(draft domain.BookingDraft, result domain.ValidationResult) {
	name := strings.TrimSpace(draft.EventName)
	switch {
	case name == "":
		result[domain.FieldEventName] = MsgEventNameRequired
	case utf8.RuneCountInString(name) > domain.MaxEventNameLength:
		result[domain.FieldEventName] = MsgEventNameTooLong
	}

	if !v.isAllowedEventType(draft.EventType) {
		result[domain.FieldEventType] = MsgEventTypeRequired
	}
}

// validateRange длительность, окно работы и пересечение с занятыми часами.
// Пересечение проверяется только если длительность корректна; сообщение одно на ключ time.
func (v *Validator) validateRange(date time.Time, dateOK bool, start, end types.TimeString, idx *domain.AvailabilityIndex, result domain.ValidationResult) {
	startHour, _ := start.Hour()
	endHour, _ := end.Hour()
	duration := endHour - startHour

	switch {
	case duration <= 0:
		result[domain.FieldTime] = MsgEndNotAfterStart
	case duration > v.cfg.MaxDurationHours:
		result[domain.FieldTime] = fmt.Sprintf(MsgDurationTooLong, v.cfg.MaxDurationHours)
	case startHour < v.cfg.WindowOpenHour || endHour > v.cfg.WindowCloseHour:
		result[domain.FieldTime] = fmt.Sprintf(MsgOutsideWindow,
			hourLabel(v.cfg.WindowOpenHour), hourLabel(v.cfg.WindowCloseHour))
	case dateOK && idx.IsRangeUnavailable(date, startHour, endHour):
		result[domain.FieldTime] = MsgTimeOverlap
	}
}

// validateNotice событие должно начинаться не раньше чем через MinNotice
func (v *Validator) validateNotice(draft domain.BookingDraft, date time.Time, dateOK bool, start types.TimeString, startOK bool, now time.Time, result domain.ValidationResult) {
	if strings.TrimSpace(draft.Date) == "" || strings.TrimSpace(draft.StartTime) == "" {
		return
	}
	if !dateOK || !startOK {
		result[domain.FieldStartTimeAdvance] = MsgInvalidSelection
		return
	}

	hour, minute, err := start.Clock()
	if err != nil {
		result[domain.FieldStartTimeAdvance] = MsgInvalidSelection
		return
	}

	eventStart := domain.CombineDateAndTime(date, hour, minute, v.cfg.Location)
	if eventStart.Sub(now) < v.cfg.MinNotice {
		result[domain.FieldStartTimeAdvance] = fmt.Sprintf(MsgAdvanceNotice, int(v.cfg.MinNotice/time.Hour))
	}
}

// validateAttendees количество участников должно быть положительным числом
func validateAttendees(raw string, result domain.ValidationResult) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		result[domain.FieldAttendees] = MsgAttendeesRequired
		return
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		result[domain.FieldAttendees] = MsgAttendeesNotPositive
	}
}

func (v *Validator) isAllowedEventType(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	for _, et := range v.cfg.EventTypes {
		if string(et) == raw {
			return true
		}
	}
	return false
}

// parseSelectedTime разбирает выбранное время; пустое или некорректное считается невыбранным
func parseSelectedTime(raw string) (types.TimeString, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	t, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return "", false
	}
	return t, true
}

// ParseAttendees возвращает количество участников из черновика (после успешной валидации)
func ParseAttendees(raw string) (int, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 {
		return 0, fmt.Errorf("attendees must be positive, got %q", raw)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("attendees out of range: %q", raw)
	}
	return int(math.Ceil(n)), nil
}
