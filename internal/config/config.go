package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/CareBookingService/internal/domain"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server           ServerConfig           `toml:"server"`
	Database         DatabaseConfig         `toml:"database"`
	Redis            RedisConfig            `toml:"redis"`
	Logs             LogsConfig             `toml:"logs"`
	Metrics          MetricsConfig          `toml:"metrics"`
	CaregiverService CaregiverServiceConfig `toml:"caregiver_service"`
	Availability     AvailabilityConfig     `toml:"availability"`
	AddressParser    AddressParserConfig    `toml:"address_parser"`
	RateLimit        RateLimitConfig        `toml:"rate_limit"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	RunMigrations   bool   `toml:"run_migrations"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig параметры Redis (хранилище прогресса обучения)
type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
	TTLHours  int    `toml:"ttl_hours"` // 0 = без срока жизни
}

// LogsConfig параметры логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CaregiverServiceConfig параметры клиента CaregiverService
type CaregiverServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// AvailabilityConfig параметры расчёта слотов
type AvailabilityConfig struct {
	DefaultHorizonDays       int    `toml:"default_horizon_days"`
	DefaultSlotDurationHours int    `toml:"default_slot_duration_hours"`
	Timezone                 string `toml:"timezone"`
}

// Location возвращает часовой пояс расчёта (по умолчанию Asia/Ho_Chi_Minh)
func (a AvailabilityConfig) Location() (*time.Location, error) {
	return time.LoadLocation(a.Timezone)
}

// AddressParserConfig параметры распознавания адресов
type AddressParserConfig struct {
	Enabled             bool    `toml:"enabled"`
	APIKey              string  `toml:"api_key"`
	Model               string  `toml:"model"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	Timeout             int     `toml:"timeout"` // секунды
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию
// и переменные окружения для секретов
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация со значениями по умолчанию
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
			RunMigrations:   true,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "training:progress",
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "care_booking_service",
		},
		CaregiverService: CaregiverServiceConfig{
			Timeout: 5,
		},
		Availability: AvailabilityConfig{
			DefaultHorizonDays:       domain.DefaultHorizonDays,
			DefaultSlotDurationHours: domain.DefaultSlotDurationHours,
			Timezone:                 "Asia/Ho_Chi_Minh",
		},
		AddressParser: AddressParserConfig{
			Model:               "gemini-1.5-flash",
			ConfidenceThreshold: domain.DefaultAddressConfidenceThreshold,
			Timeout:             10,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1,
			Burst:             5,
		},
	}
}

// applyEnv секреты из окружения имеют приоритет над файлом
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AddressParser.APIKey = v
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.CaregiverService.URL == "" {
		return fmt.Errorf("%w: caregiver_service.url is required", ErrInvalidConfig)
	}

	a := c.Availability
	if a.DefaultHorizonDays < 1 || a.DefaultHorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: availability.default_horizon_days must be 1..%d",
			ErrInvalidConfig, domain.MaxHorizonDays)
	}
	if a.DefaultSlotDurationHours < domain.MinSlotDurationHours || a.DefaultSlotDurationHours > domain.MaxSlotDurationHours {
		return fmt.Errorf("%w: availability.default_slot_duration_hours must be %d..%d",
			ErrInvalidConfig, domain.MinSlotDurationHours, domain.MaxSlotDurationHours)
	}
	if _, err := a.Location(); err != nil {
		return fmt.Errorf("%w: availability.timezone: %v", ErrInvalidConfig, err)
	}

	if c.AddressParser.ConfidenceThreshold < 0 || c.AddressParser.ConfidenceThreshold > 1 {
		return fmt.Errorf("%w: address_parser.confidence_threshold must be 0..1", ErrInvalidConfig)
	}
	if c.AddressParser.Enabled && c.AddressParser.APIKey == "" {
		return fmt.Errorf("%w: address_parser.api_key (or GEMINI_API_KEY) is required when enabled", ErrInvalidConfig)
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when enabled", ErrInvalidConfig)
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}

	return nil
}
