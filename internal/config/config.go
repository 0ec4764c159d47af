package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-VenueBookingService/internal/service/slots"
)

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig конфигурация не прошла проверку
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Booking    BookingConfig    `toml:"booking"`
	BookingAPI BookingAPIConfig `toml:"booking_api"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"min=1"`
	WriteTimeout    int `toml:"write_timeout" validate:"min=1"`
	IdleTimeout     int `toml:"idle_timeout" validate:"min=1"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"min=1"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" validate:"required"`
	Port            int    `toml:"port" validate:"required,min=1,max=65535"`
	User            string `toml:"user" validate:"required"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" validate:"required"`
	SSLMode         string `toml:"sslmode" validate:"oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true,omitempty,startswith=/"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
}

// RedisConfig настройки Redis (кэш истории и уведомления)
type RedisConfig struct {
	Enabled         bool   `toml:"enabled"`
	Addr            string `toml:"addr" validate:"required_if=Enabled true,omitempty,hostname_port"`
	Password        string `toml:"password"`
	DB              int    `toml:"db" validate:"min=0,max=15"`
	EventsChannel   string `toml:"events_channel" validate:"required_if=Enabled true"`
	HistoryTTLHours int    `toml:"history_ttl_hours" validate:"min=0"`
}

// RateLimitConfig ограничение частоты создания бронирований на пользователя
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerMinute float64 `toml:"requests_per_minute" validate:"required_if=Enabled true,omitempty,gt=0"`
	Burst             int     `toml:"burst" validate:"required_if=Enabled true,omitempty,min=1"`
}

// BookingConfig правила бронирования площадок
type BookingConfig struct {
	Timezone         string `toml:"timezone" validate:"required"`
	WindowOpenHour   int    `toml:"window_open_hour" validate:"min=0,max=23"`
	WindowCloseHour  int    `toml:"window_close_hour" validate:"min=1,max=24,gtfield=WindowOpenHour"`
	MaxDurationHours int    `toml:"max_duration_hours" validate:"min=1,max=24"`
	MinNoticeHours   int    `toml:"min_notice_hours" validate:"min=1"`
}

// Location часовой пояс площадок
func (c BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// MinNotice минимальное время до начала события
func (c BookingConfig) MinNotice() time.Duration {
	return time.Duration(c.MinNoticeHours) * time.Hour
}

// SlotsConfig правила для slots.Validator
func (c BookingConfig) SlotsConfig() (slots.Config, error) {
	loc, err := c.Location()
	if err != nil {
		return slots.Config{}, fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}

	cfg := slots.DefaultConfig()
	cfg.WindowOpenHour = c.WindowOpenHour
	cfg.WindowCloseHour = c.WindowCloseHour
	cfg.MaxDurationHours = c.MaxDurationHours
	cfg.MinNotice = c.MinNotice()
	cfg.Location = loc
	return cfg, nil
}

// BookingAPIConfig настройки клиента API бронирований (используется bookctl)
type BookingAPIConfig struct {
	URL     string `toml:"url" validate:"omitempty,url"`
	Timeout int    `toml:"timeout" validate:"min=1"` // секунды
}

// Load читает конфигурацию из TOML файла, дополняет значениями по умолчанию и проверяет
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах и bookctl)
func Parse(data string) (*Config, error) {
	cfg := Default()

	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения по тегам validate
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Default значения по умолчанию; поля из файла их перекрывают
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "venue_booking_service",
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			EventsChannel:   "venue-bookings.events",
			HistoryTTLHours: 24 * 30,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 10,
			Burst:             3,
		},
		Booking: BookingConfig{
			Timezone:         "Local",
			WindowOpenHour:   7,
			WindowCloseHour:  22,
			MaxDurationHours: 6,
			MinNoticeHours:   24,
		},
		BookingAPI: BookingAPIConfig{
			URL:     "http://localhost:8080",
			Timeout: 10,
		},
	}
}
