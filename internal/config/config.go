package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string     `validate:"oneof=dev prod"`
	LogLevel slog.Level `validate:"-"`
	HTTPAddr string     `validate:"required"`

	Driver string `validate:"eq=sqlite3"`
	DSN    string
	// Path is the SQLite file holding the measurement and station tables.
	// Ignored when DSN is set.
	Path            string        `validate:"required_without=DSN"`
	MaxOpenConns    int           `validate:"gte=0"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`

	// QueryTimeout bounds the store work done for one request.
	QueryTimeout time.Duration `validate:"gt=0"`
	// StrictDates rejects path dates that are not YYYY-MM-DD instead of
	// answering with an empty summary.
	StrictDates bool
}

var validate = validator.New()

// LoadFromEnv reads the process environment. Variables from a .env file in
// the working directory are applied first without overriding the
// environment; a missing file is not an error.
func LoadFromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	level, err := parseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	maxOpenConns, err := getenvInt("DB_MAX_OPEN_CONNS", 4)
	if err != nil {
		return Config{}, err
	}
	maxIdleConns, err := getenvInt("DB_MAX_IDLE_CONNS", 4)
	if err != nil {
		return Config{}, err
	}
	connMaxLifetime, err := getenvDuration("DB_CONN_MAX_LIFETIME", 0)
	if err != nil {
		return Config{}, err
	}
	queryTimeout, err := getenvDuration("QUERY_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	strictDates, err := getenvBool("STRICT_DATES", false)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:          getenvDefault("APP_ENV", "dev"),
		LogLevel:        level,
		HTTPAddr:        getenvDefault("HTTP_ADDR", ":8080"),
		Driver:          getenvDefault("DB_DRIVER", "sqlite3"),
		DSN:             strings.TrimSpace(os.Getenv("DB_DSN")),
		Path:            getenvDefault("SQLITE_PATH", "Resources/hawaii.sqlite"),
		MaxOpenConns:    maxOpenConns,
		MaxIdleConns:    maxIdleConns,
		ConnMaxLifetime: connMaxLifetime,
		QueryTimeout:    queryTimeout,
		StrictDates:     strictDates,
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, describeValidation(err)
	}
	return cfg, nil
}

// describeValidation turns validator output into "invalid APP_ENV ..." style
// messages that name the environment variable.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("invalid %s %q (rule: %s)", envNames[fe.Field()], fmt.Sprint(fe.Value()), ruleText(fe)))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func ruleText(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

var envNames = map[string]string{
	"AppEnv":          "APP_ENV",
	"HTTPAddr":        "HTTP_ADDR",
	"Driver":          "DB_DRIVER",
	"Path":            "SQLITE_PATH",
	"MaxOpenConns":    "DB_MAX_OPEN_CONNS",
	"MaxIdleConns":    "DB_MAX_IDLE_CONNS",
	"ConnMaxLifetime": "DB_CONN_MAX_LIFETIME",
	"QueryTimeout":    "QUERY_TIMEOUT",
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

func getenvBool(key string, def bool) (bool, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return b, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
