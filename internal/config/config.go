package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/whats-on/internal/domain"
)

// Допустимые формы ответа каталога
const (
	ResponseShapeWrapped = "wrapped"
	ResponseShapeArray   = "array"
	ResponseShapeAuto    = "auto"
)

// Бэкенды хранилища предпочтений
const (
	PreferencesBackendRedis    = "redis"
	PreferencesBackendPostgres = "postgres"
	PreferencesBackendMemory   = "memory"
)

type Config struct {
	Server      ServerConfig
	Log         LogConfig
	Catalog     CatalogConfig
	Preferences PreferencesConfig
	Filter      FilterConfig
	Redis       RedisConfig
	Database    DatabaseConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	Env             string
	DefaultLocation string
	AllowOrigins    string
}

type LogConfig struct {
	Level string
}

// CatalogConfig - параметры удалённого сервиса событий и площадок
type CatalogConfig struct {
	BaseURL        string
	EventsPath     string
	EventsParam    string
	VenuesPath     string
	VenuesParam    string
	ResponseShape  string
	RequestTimeout time.Duration
}

type PreferencesConfig struct {
	Backend string
	Key     string
}

type FilterConfig struct {
	Timezone         string
	DateMatch        domain.DateMatchMode
	BlockedVenueMode domain.BlockedVenueMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env не обязателен: без него работаем на переменных окружения
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            viper.GetString("API_HOST"),
			Port:            viper.GetInt("API_PORT"),
			Env:             viper.GetString("API_ENV"),
			DefaultLocation: viper.GetString("DEFAULT_LOCATION"),
			AllowOrigins:    viper.GetString("CORS_ALLOW_ORIGINS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Catalog: CatalogConfig{
			BaseURL:        strings.TrimRight(viper.GetString("CATALOG_BASE_URL"), "/"),
			EventsPath:     viper.GetString("CATALOG_EVENTS_PATH"),
			EventsParam:    viper.GetString("CATALOG_EVENTS_PARAM"),
			VenuesPath:     viper.GetString("CATALOG_VENUES_PATH"),
			VenuesParam:    viper.GetString("CATALOG_VENUES_PARAM"),
			ResponseShape:  strings.ToLower(viper.GetString("CATALOG_RESPONSE_SHAPE")),
			RequestTimeout: time.Duration(viper.GetInt("CATALOG_REQUEST_TIMEOUT")) * time.Second,
		},
		Preferences: PreferencesConfig{
			Backend: strings.ToLower(viper.GetString("PREFERENCES_BACKEND")),
			Key:     viper.GetString("PREFERENCES_KEY"),
		},
		Filter: FilterConfig{
			Timezone:         viper.GetString("DISPLAY_TIMEZONE"),
			DateMatch:        domain.DateMatchMode(strings.ToLower(viper.GetString("DATE_MATCH"))),
			BlockedVenueMode: domain.BlockedVenueMode(strings.ToLower(viper.GetString("BLOCKED_VENUE_MODE"))),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults - значения по умолчанию для незаданных параметров
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.DefaultLocation == "" {
		c.Server.DefaultLocation = "Amsterdam"
	}
	if c.Server.AllowOrigins == "" {
		c.Server.AllowOrigins = "http://localhost:3000,http://localhost:5173"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Catalog.EventsPath == "" {
		c.Catalog.EventsPath = "/events"
	}
	if c.Catalog.EventsParam == "" {
		c.Catalog.EventsParam = "location"
	}
	if c.Catalog.VenuesPath == "" {
		c.Catalog.VenuesPath = "/venues"
	}
	if c.Catalog.VenuesParam == "" {
		c.Catalog.VenuesParam = "city"
	}
	if c.Catalog.ResponseShape == "" {
		c.Catalog.ResponseShape = ResponseShapeWrapped
	}
	if c.Catalog.RequestTimeout == 0 {
		c.Catalog.RequestTimeout = 10 * time.Second
	}

	if c.Preferences.Backend == "" {
		c.Preferences.Backend = PreferencesBackendRedis
	}
	if c.Preferences.Key == "" {
		c.Preferences.Key = "venuePreferences"
	}

	if c.Filter.Timezone == "" {
		c.Filter.Timezone = "Europe/Amsterdam"
	}
	if c.Filter.DateMatch == "" {
		c.Filter.DateMatch = domain.DateMatchCalendarDay
	}
	if c.Filter.BlockedVenueMode == "" {
		c.Filter.BlockedVenueMode = domain.BlockedVenueExclude
	}

	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 5
	}
}

// Validate проверяет перечислимые значения конфигурации
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return errors.New("CATALOG_BASE_URL is required")
	}

	switch c.Catalog.ResponseShape {
	case ResponseShapeWrapped, ResponseShapeArray, ResponseShapeAuto:
	default:
		return fmt.Errorf("unsupported CATALOG_RESPONSE_SHAPE %q", c.Catalog.ResponseShape)
	}

	switch c.Preferences.Backend {
	case PreferencesBackendRedis, PreferencesBackendPostgres, PreferencesBackendMemory:
	default:
		return fmt.Errorf("unsupported PREFERENCES_BACKEND %q", c.Preferences.Backend)
	}

	switch c.Filter.DateMatch {
	case domain.DateMatchCalendarDay, domain.DateMatchDayOfMonth:
	default:
		return fmt.Errorf("unsupported DATE_MATCH %q", c.Filter.DateMatch)
	}

	switch c.Filter.BlockedVenueMode {
	case domain.BlockedVenueExclude, domain.BlockedVenueRetain:
	default:
		return fmt.Errorf("unsupported BLOCKED_VENUE_MODE %q", c.Filter.BlockedVenueMode)
	}

	if _, err := time.LoadLocation(c.Filter.Timezone); err != nil {
		return fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", c.Filter.Timezone, err)
	}

	return nil
}

// DisplayLocation возвращает часовой пояс отображения
func (c *Config) DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(c.Filter.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
