package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, если результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString время суток в формате "HH:MM" (допускается "HH:MM:SS" при чтении из БД)
// Хранится как строка, чтобы некорректные значения из внешних источников
// не ломали десериализацию целиком.
type TimeString string

// NewTimeString создает TimeString из time.Time (берутся часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит и нормализует строку времени
func NewTimeStringFromString(s string) (TimeString, error) {
	h, m, err := parseClock(s)
	if err != nil {
		return "", err
	}
	return TimeString(fmt.Sprintf("%02d:%02d", h, m)), nil
}

// FromHour создает TimeString для начала часа
func FromHour(hour int) TimeString {
	return TimeString(fmt.Sprintf("%02d:00", hour))
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return strings.TrimSpace(string(t)) == ""
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	_, _, err := parseClock(string(t))
	return err
}

// Hour возвращает час (0-23)
func (t TimeString) Hour() (int, error) {
	h, _, err := parseClock(string(t))
	return h, err
}

// HourOr возвращает час или значение по умолчанию, если время некорректно
func (t TimeString) HourOr(def int) int {
	h, err := t.Hour()
	if err != nil {
		return def
	}
	return h
}

// Clock возвращает часы и минуты
func (t TimeString) Clock() (int, int, error) {
	return parseClock(string(t))
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	h, m, err := parseClock(string(t))
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// WithSeconds возвращает время в формате "HH:MM:00"
func (t TimeString) WithSeconds() (string, error) {
	h, m, err := parseClock(string(t))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d:00", h, m), nil
}

// AddMinutes добавляет минуты; переход через полночь считается ошибкой
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total += minutes
	if total < 0 || total >= 24*60 {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// Scan реализует sql.Scanner для колонок типа TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(string(v))
	case time.Time:
		*t = NewTimeString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
	return nil
}

// Value реализует driver.Valuer, время пишется как "HH:MM:00"
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.WithSeconds()
}

// parseClock разбирает "HH:MM" или "HH:MM:SS"
func parseClock(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, ErrInvalidTimeString
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, ErrInvalidTimeString
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, ErrInvalidTimeString
	}

	if len(parts) == 3 {
		// Секунды допускаются (в т.ч. дробные), но не используются
		sec, err := strconv.ParseFloat(parts[2], 64)
		if err != nil || sec < 0 || sec >= 60 {
			return 0, 0, ErrInvalidTimeString
		}
	}

	return h, m, nil
}
