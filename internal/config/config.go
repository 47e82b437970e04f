package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Rutas default donde buscar el archivo de configuración (opcional).
var defaultConfigPaths = []string{
	"config.yaml",
	"/etc/dog-training/config.yaml",
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// DSN vacío => repos in-memory (dev/tests).
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type SMTPConfig struct {
	Host     string        `koanf:"host"`
	Port     int           `koanf:"port"`
	User     string        `koanf:"user"`
	Password string        `koanf:"password"`
	From     string        `koanf:"from"`
	FromName string        `koanf:"from_name"`
	StartTLS bool          `koanf:"starttls"`
	Timeout  time.Duration `koanf:"timeout"`
}

func (c SMTPConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != "" && strings.TrimSpace(c.From) != ""
}

type AuthConfig struct {
	// JWTSecret vacío => modo dev (claims via X-Debug-User-ID).
	JWTSecret string `koanf:"jwt_secret"`
	Issuer    string `koanf:"issuer"`
}

type ReminderConfig struct {
	Enabled       bool          `koanf:"enabled"`
	CheckInterval time.Duration `koanf:"check_interval"`
	// Hora local (0-23) a partir de la cual se dispara el batch del día.
	SendHour int    `koanf:"send_hour"`
	Timezone string `koanf:"timezone"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // text|json
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	SMTP     SMTPConfig     `koanf:"smtp"`
	Auth     AuthConfig     `koanf:"auth"`
	Reminder ReminderConfig `koanf:"reminder"`
	Logging  LoggingConfig  `koanf:"logging"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            4999,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 30 * time.Minute,
		},
		SMTP: SMTPConfig{
			Port:     587,
			FromName: "Bucks Dog Training",
			StartTLS: true,
			Timeout:  30 * time.Second,
		},
		Reminder: ReminderConfig{
			Enabled:       true,
			CheckInterval: time.Minute,
			SendHour:      7,
			Timezone:      "Local",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load arma la config en capas: defaults -> archivo YAML (opcional) -> env.
// Env vars: SERVER_PORT, DATABASE_DSN, SMTP_HOST, AUTH_JWT_SECRET,
// REMINDER_SEND_HOUR, LOG_LEVEL, etc. PORT solo también funciona.
func Load() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("config defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envToPath), nil); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("config: server.port out of range")
	}
	if c.Reminder.SendHour < 0 || c.Reminder.SendHour > 23 {
		return errors.New("config: reminder.send_hour must be 0-23")
	}
	return nil
}

// ReminderLocation resuelve la zona horaria del job de recordatorios.
func (c Config) ReminderLocation() *time.Location {
	tz := strings.TrimSpace(c.Reminder.Timezone)
	if tz == "" || strings.EqualFold(tz, "Local") {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

func findConfigFile() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envToPath mapea SERVER_READ_TIMEOUT => server.read_timeout.
// Devuelve "" para env vars que no son nuestras (koanf las ignora).
func envToPath(s string) string {
	// Compat con el deploy original, que solo seteaba PORT.
	if s == "PORT" {
		return "server.port"
	}
	if s == "DB_DSN" {
		return "database.dsn"
	}

	prefixes := map[string]string{
		"SERVER_":   "server.",
		"DATABASE_": "database.",
		"SMTP_":     "smtp.",
		"AUTH_":     "auth.",
		"REMINDER_": "reminder.",
		"LOG_":      "logging.",
	}
	for prefix, section := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return section + strings.ToLower(strings.TrimPrefix(s, prefix))
		}
	}
	return ""
}
