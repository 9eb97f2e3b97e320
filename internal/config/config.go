package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/ADS-SchedulingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
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
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig настройки правил бронирования
// MinAdvanceHours - запасное значение, основное хранится в БД
type BookingConfig struct {
	MinAdvanceHours         int `toml:"min_advance_hours"`
	CancellationCutoffHours int `toml:"cancellation_cutoff_hours"`
	LookaheadDays           int `toml:"lookahead_days"`
}

// Load загружает конфигурацию из TOML файла
// Переменные окружения (в том числе из .env) перекрывают настройки БД
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	// .env может отсутствовать, тогда берем только реальное окружение
	_ = godotenv.Load(".env")
	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("DB_HOST"); host != "" {
		c.Database.Host = host
	}
	if portStr := os.Getenv("DB_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			c.Database.Port = port
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		c.Database.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		c.Database.Password = password
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		c.Database.DBName = dbName
	}
}

func (c *Config) applyDefaults() {
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Booking.MinAdvanceHours == 0 {
		c.Booking.MinAdvanceHours = domain.DefaultMinAdvanceBookingHours
	}
	if c.Booking.CancellationCutoffHours == 0 {
		c.Booking.CancellationCutoffHours = domain.DefaultCancellationCutoffHours
	}
	if c.Booking.LookaheadDays == 0 {
		c.Booking.LookaheadDays = domain.DefaultLookaheadDays
	}
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	return nil
}
