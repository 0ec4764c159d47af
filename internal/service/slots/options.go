package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
	"github.com/m04kA/SMC-VenueBookingService/pkg/types"
)

// HourOption вариант часа для выпадающего списка
type HourOption struct {
	Hour  int              // 0-23
	Value types.TimeString // "HH:00"
	Label string           // "7:00 AM"
}

// AllowedStartHours часы окна работы, которые свободны на дату
// и для которых существует хотя бы один допустимый час окончания
func (v *Validator) AllowedStartHours(date time.Time, idx *domain.AvailabilityIndex) []int {
	hours := make([]int, 0, v.cfg.WindowCloseHour-v.cfg.WindowOpenHour+1)
	for h := v.cfg.WindowOpenHour; h <= v.cfg.WindowCloseHour; h++ {
		if idx.IsHourUnavailable(date, h) {
			continue
		}
		if len(v.AllowedEndHours(date, h, idx)) == 0 {
			continue
		}
		hours = append(hours, h)
	}
	return hours
}

// AllowedEndHours часы в (startHour, startHour+MaxDuration], не позже закрытия окна,
// за исключением занятых на дату
func (v *Validator) AllowedEndHours(date time.Time, startHour int, idx *domain.AvailabilityIndex) []int {
	last := startHour + v.cfg.MaxDurationHours
	if last > v.cfg.WindowCloseHour {
		last = v.cfg.WindowCloseHour
	}

	hours := make([]int, 0, v.cfg.MaxDurationHours)
	for h := startHour + 1; h <= last; h++ {
		if idx.IsHourUnavailable(date, h) {
			continue
		}
		hours = append(hours, h)
	}
	return hours
}

// ReconcileEndTime возвращает время окончания, которое обязательно входит в allowed:
// текущее, если оно допустимо, иначе первое допустимое, иначе пустую строку
func ReconcileEndTime(current string, allowed []int) string {
	return reconcileHour(current, allowed)
}

// ReconcileStartTime то же правило для времени начала после смены даты
func ReconcileStartTime(current string, allowed []int) string {
	return reconcileHour(current, allowed)
}

func reconcileHour(current string, allowed []int) string {
	if len(allowed) == 0 {
		return ""
	}
	if t, err := types.NewTimeStringFromString(current); err == nil {
		h, m, _ := t.Clock()
		if m == 0 {
			for _, a := range allowed {
				if a == h {
					return types.FromHour(h).String()
				}
			}
		}
	}
	return types.FromHour(allowed[0]).String()
}

// HourOptions превращает список часов в варианты выбора
func HourOptions(hours []int) []HourOption {
	options := make([]HourOption, 0, len(hours))
	for _, h := range hours {
		options = append(options, HourOption{
			Hour:  h,
			Value: types.FromHour(h),
			Label: hourLabel(h),
		})
	}
	return options
}

// hourLabel форматирует час в 12-часовом виде, например "7:00 AM"
func hourLabel(hour int) string {
	if hour == 24 {
		hour = 0
	}
	t := time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC)
	return t.Format(domain.DisplayTimeFormat)
}

// FormatRange форматирует интервал как "9:00 AM - 10:00 AM"
func FormatRange(start, end types.TimeString) string {
	return fmt.Sprintf("%s - %s", clockLabel(start), clockLabel(end))
}

func clockLabel(t types.TimeString) string {
	h, m, err := t.Clock()
	if err != nil {
		return t.String()
	}
	return time.Date(2000, 1, 1, h, m, 0, 0, time.UTC).Format(domain.DisplayTimeFormat)
}
