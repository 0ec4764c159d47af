package slots

import (
	"time"

	"github.com/m04kA/SMC-VenueBookingService/internal/domain"
)

// Config правила бронирования, которые применяет Validator
type Config struct {
	WindowOpenHour   int                // Первый час, с которого можно начать бронирование
	WindowCloseHour  int                // Последний час, которым может закончиться бронирование
	MaxDurationHours int                // Максимальная длительность бронирования в часах
	MinNotice        time.Duration      // Минимальное время до начала события
	EventTypes       []domain.EventType // Допустимые типы событий
	Location         *time.Location     // Часовой пояс площадки, в котором трактуются дата и время
}

// DefaultConfig возвращает правила по умолчанию: окно 07-22, до 6 часов, за 24 часа
func DefaultConfig() Config {
	return Config{
		WindowOpenHour:   domain.DefaultWindowOpenHour,
		WindowCloseHour:  domain.DefaultWindowCloseHour,
		MaxDurationHours: domain.DefaultMaxDurationHours,
		MinNotice:        domain.DefaultMinNotice,
		EventTypes:       domain.EventTypes,
		Location:         time.Local,
	}
}

// withDefaults заполняет незаданные поля значениями по умолчанию
func (c Config) withDefaults() Config {
	def := DefaultConfig()

	if c.WindowOpenHour <= 0 && c.WindowCloseHour <= 0 {
		c.WindowOpenHour = def.WindowOpenHour
		c.WindowCloseHour = def.WindowCloseHour
	}
	if c.MaxDurationHours <= 0 {
		c.MaxDurationHours = def.MaxDurationHours
	}
	if c.MinNotice <= 0 {
		c.MinNotice = def.MinNotice
	}
	if len(c.EventTypes) == 0 {
		c.EventTypes = def.EventTypes
	}
	if c.Location == nil {
		c.Location = def.Location
	}

	return c
}
