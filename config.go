package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v2"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Log level constants
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log type constants
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// LogSettings selects the log destination and rotation limits.
type LogSettings struct {
	Level      string `validate:"required,oneof=debug info warning error"`
	Type       string `validate:"required,oneof=console file"`
	FilePath   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

// Config is built once at start-up and passed by value; nothing mutates it
// afterwards.
type Config struct {
	Host          string `validate:"required"`
	Port          int    `validate:"min=1,max=65535"`
	Debug         bool
	SecretKey     string `validate:"required,min=16"`
	TemplatesGlob string `validate:"required"`
	StaticDir     string `validate:"required"`
	ContentFile   string
	FlashTTL      time.Duration
	Log           LogSettings
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks every field and wraps failures in ErrInvalidConfig.
func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.FlashTTL <= 0 {
		return fmt.Errorf("%w: flash ttl must be positive", ErrInvalidConfig)
	}

	if c.Log.Type == LogTypeFile {
		if c.Log.FilePath == "" {
			return fmt.Errorf("%w: file path is required for file logger", ErrInvalidConfig)
		}
		if c.Log.MaxSize < 1 || c.Log.MaxSize > 100 {
			return fmt.Errorf("%w: max size must be between 1 and 100 MB", ErrInvalidConfig)
		}
		if c.Log.MaxBackups < 1 || c.Log.MaxBackups > 10 {
			return fmt.Errorf("%w: max backups must be between 1 and 10", ErrInvalidConfig)
		}
		if c.Log.MaxAge < 1 || c.Log.MaxAge > 365 {
			return fmt.Errorf("%w: max age must be between 1 and 365 days", ErrInvalidConfig)
		}
	}

	return nil
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "host", Value: "127.0.0.1", EnvVars: []string{"HOST"}, Usage: "interface to bind"},
		&cli.IntFlag{Name: "port", Value: 8080, EnvVars: []string{"PORT"}, Usage: "port to listen on"},
		&cli.BoolFlag{Name: "debug", EnvVars: []string{"DEBUG"}, Usage: "serve templates and assets from disk on every request"},
		&cli.StringFlag{Name: "secret-key", EnvVars: []string{"SECRET_KEY"}, Usage: "key for signing session cookies (random when unset)"},
		&cli.StringFlag{Name: "templates", Value: "templates/*", EnvVars: []string{"TEMPLATES_GLOB"}, Usage: "glob matching the HTML templates"},
		&cli.StringFlag{Name: "static-dir", Value: "static", EnvVars: []string{"STATIC_DIR"}, Usage: "directory served under /static"},
		&cli.StringFlag{Name: "content-file", EnvVars: []string{"CONTENT_FILE"}, Usage: "YAML file overriding the built-in content"},
		&cli.DurationFlag{Name: "flash-ttl", Value: 10 * time.Minute, EnvVars: []string{"FLASH_TTL"}, Usage: "how long an unread flash notice is kept"},
		&cli.StringFlag{Name: "log-level", Value: LogLevelInfo, EnvVars: []string{"LOG_LEVEL"}},
		&cli.StringFlag{Name: "log-type", Value: LogTypeConsole, EnvVars: []string{"LOG_TYPE"}},
		&cli.StringFlag{Name: "log-file", EnvVars: []string{"LOG_FILE"}},
		&cli.IntFlag{Name: "log-max-size", Value: 10, EnvVars: []string{"LOG_MAX_SIZE"}},
		&cli.IntFlag{Name: "log-max-backups", Value: 3, EnvVars: []string{"LOG_MAX_BACKUPS"}},
		&cli.IntFlag{Name: "log-max-age", Value: 28, EnvVars: []string{"LOG_MAX_AGE"}},
	}
}

// configFromCLI builds and validates a Config from parsed flags.
func configFromCLI(c *cli.Context) (Config, error) {
	secret := c.String("secret-key")
	if secret == "" {
		var err error
		if secret, err = generateSecret(); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		Host:          c.String("host"),
		Port:          c.Int("port"),
		Debug:         c.Bool("debug"),
		SecretKey:     secret,
		TemplatesGlob: c.String("templates"),
		StaticDir:     c.String("static-dir"),
		ContentFile:   c.String("content-file"),
		FlashTTL:      c.Duration("flash-ttl"),
		Log: LogSettings{
			Level:      c.String("log-level"),
			Type:       c.String("log-type"),
			FilePath:   c.String("log-file"),
			MaxSize:    c.Int("log-max-size"),
			MaxBackups: c.Int("log-max-backups"),
			MaxAge:     c.Int("log-max-age"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func generateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secret key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
