package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/types"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "STUDIO_"

var (
	// ErrReadConfig не удалось прочитать или разобрать файл
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig значения конфигурации некорректны
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Studio    StudioConfig    `toml:"studio"`
	Snapshots SnapshotsConfig `toml:"snapshots"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// DSN строка подключения lib/pq в формате URL
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StudioConfig значения по умолчанию для иерархии настроек студии
// Пустые поля берутся из domain.DefaultResolvedConfig
type StudioConfig struct {
	TaxRate             string `toml:"tax_rate"`
	TaxMode             string `toml:"tax_mode"`
	OpenTime            string `toml:"open_time"`
	CloseTime           string `toml:"close_time"`
	PublicSlotMinutes   int    `toml:"public_slot_minutes"`
	InternalSlotMinutes int    `toml:"internal_slot_minutes"`
	SettlementTolerance int64  `toml:"settlement_tolerance"`
}

// SnapshotsConfig подписки на коллекции через LISTEN/NOTIFY
type SnapshotsConfig struct {
	Enabled              bool     `toml:"enabled"`
	Channel              string   `toml:"channel"`
	MinReconnectInterval int      `toml:"min_reconnect_interval"` // секунды
	MaxReconnectInterval int      `toml:"max_reconnect_interval"` // секунды
	PingPeriod           int      `toml:"ping_period"`            // секунды
	AllowedOrigins       []string `toml:"allowed_origins"`
}

// Default конфигурация без файла
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
			User:            "postgres",
			DBName:          "studio",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "studio-service",
		},
		Snapshots: SnapshotsConfig{
			Enabled:              true,
			Channel:              "studio_changes",
			MinReconnectInterval: 10,
			MaxReconnectInterval: 60,
			PingPeriod:           30,
		},
	}
}

// Load читает config.toml поверх Default, затем .env (если есть) и переменные STUDIO_*
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"DB_HOST":      &c.Database.Host,
		"DB_USER":      &c.Database.User,
		"DB_PASSWORD":  &c.Database.Password,
		"DB_NAME":      &c.Database.DBName,
		"DB_SSLMODE":   &c.Database.SSLMode,
		"LOG_LEVEL":    &c.Logs.Level,
		"LOG_FILE":     &c.Logs.File,
		"TAX_RATE":     &c.Studio.TaxRate,
		"TAX_MODE":     &c.Studio.TaxMode,
		"OPEN_TIME":    &c.Studio.OpenTime,
		"CLOSE_TIME":   &c.Studio.CloseTime,
		"METRICS_PATH": &c.Metrics.Path,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int{
		"HTTP_PORT": &c.Server.HTTPPort,
		"DB_PORT":   &c.Database.Port,
	}
	for key, dst := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalidConfig, EnvPrefix, key, v)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"METRICS_ENABLED":   &c.Metrics.Enabled,
		"SNAPSHOTS_ENABLED": &c.Snapshots.Enabled,
	}
	for key, dst := range bools {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalidConfig, EnvPrefix, key, v)
		}
		*dst = b
	}

	return nil
}

// Validate проверяет конфигурацию целиком
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		problems = append(problems, "database.host and database.dbname are required")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns && c.Database.MaxOpenConns > 0 {
		problems = append(problems, "database.max_idle_conns exceeds max_open_conns")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if c.Snapshots.Enabled && c.Snapshots.Channel == "" {
		problems = append(problems, "snapshots.channel is required")
	}

	if _, err := c.Studio.Resolve(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Resolve накладывает [studio] на значения по умолчанию
func (s StudioConfig) Resolve() (domain.ResolvedConfig, error) {
	resolved := domain.DefaultResolvedConfig()

	if s.TaxRate != "" {
		rate, err := decimal.NewFromString(s.TaxRate)
		if err != nil || rate.IsNegative() {
			return resolved, fmt.Errorf("studio.tax_rate %q is not a non-negative number", s.TaxRate)
		}
		resolved.TaxRate = rate
	}
	if s.TaxMode != "" {
		mode := domain.TaxMode(strings.ToUpper(s.TaxMode))
		if !mode.IsValid() {
			return resolved, fmt.Errorf("studio.tax_mode %q is unknown", s.TaxMode)
		}
		resolved.TaxMode = mode
	}
	if s.OpenTime != "" {
		open, err := types.NewTimeStringFromString(s.OpenTime)
		if err != nil {
			return resolved, fmt.Errorf("studio.open_time: %v", err)
		}
		resolved.OpenTime = open
	}
	if s.CloseTime != "" {
		closeTime, err := types.NewTimeStringFromString(s.CloseTime)
		if err != nil {
			return resolved, fmt.Errorf("studio.close_time: %v", err)
		}
		resolved.CloseTime = closeTime
	}
	if resolved.OpenTime.Minutes() >= resolved.CloseTime.Minutes() {
		return resolved, fmt.Errorf("studio.open_time %s must be before close_time %s", resolved.OpenTime, resolved.CloseTime)
	}
	if s.PublicSlotMinutes < 0 || s.InternalSlotMinutes < 0 || s.SettlementTolerance < 0 {
		return resolved, errors.New("studio slot minutes and settlement tolerance must not be negative")
	}
	if s.PublicSlotMinutes > 0 {
		resolved.PublicSlotMinutes = s.PublicSlotMinutes
	}
	if s.InternalSlotMinutes > 0 {
		resolved.InternalSlotMinutes = s.InternalSlotMinutes
	}
	if s.SettlementTolerance > 0 {
		resolved.SettlementTolerance = s.SettlementTolerance
	}

	return resolved, nil
}

// ReconnectIntervals интервалы переподключения pq.Listener
func (s SnapshotsConfig) ReconnectIntervals() (time.Duration, time.Duration) {
	return time.Duration(s.MinReconnectInterval) * time.Second, time.Duration(s.MaxReconnectInterval) * time.Second
}
