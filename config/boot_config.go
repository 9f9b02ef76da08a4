package config

import (
	"errors"
	"os"
	"time"

	"github.com/SaiNageswarS/go-mvc-boot/dotenv"
	"github.com/caarlos0/env/v11"
	"github.com/go-ini/ini"
	"github.com/rs/cors"
)

// BootConfig is the framework configuration. Applications embed it with
// `ini:",extends"` and add their own keys.
type BootConfig struct {
	HTTPPort string `ini:"http_port" env:"HTTP_PORT"`

	// Root namespace every "XxxController@action" target is looked up under.
	ControllerRoot string `ini:"controller_root" env:"CONTROLLER_ROOT"`

	// json or text
	Renderer string `ini:"renderer" env:"RENDERER"`

	// cors, disabled while no origin is configured
	CORSAllowedOrigins   []string `ini:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	CORSAllowedMethods   []string `ini:"cors_allowed_methods" env:"CORS_ALLOWED_METHODS" envSeparator:","`
	CORSAllowedHeaders   []string `ini:"cors_allowed_headers" env:"CORS_ALLOWED_HEADERS" envSeparator:","`
	CORSAllowCredentials bool     `ini:"cors_allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`

	// requests per second, 0 disables limiting
	RateLimit float64 `ini:"rate_limit" env:"RATE_LIMIT"`
	RateBurst int     `ini:"rate_burst" env:"RATE_BURST"`

	ShutdownTimeout time.Duration `ini:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	LogLevel        string        `ini:"log_level" env:"LOG_LEVEL"`
}

func DefaultBootConfig() BootConfig {
	return BootConfig{
		HTTPPort:        ":8080",
		ControllerRoot:  `App\Controllers`,
		Renderer:        "json",
		RateBurst:       1,
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",
	}
}

// CORSPolicy builds the process-wide CORS policy, or nil when CORS is off.
func (c *BootConfig) CORSPolicy() *cors.Cors {
	if len(c.CORSAllowedOrigins) == 0 {
		return nil
	}
	return cors.New(cors.Options{
		AllowedOrigins:   c.CORSAllowedOrigins,
		AllowedMethods:   c.CORSAllowedMethods,
		AllowedHeaders:   c.CORSAllowedHeaders,
		AllowCredentials: c.CORSAllowCredentials,
	})
}

// Loads config into the target struct from the given path - an INI file.
// The section named by the ENV variable is used (the default section when ENV is unset),
// then a .env file in the working directory is loaded and environment variables override
// the INI values. Secrets belong in the environment, never in the INI file.
func LoadConfig[T any](path string, target *T) error {
	if target == nil {
		return errors.New("target cannot be nil")
	}

	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	runMode := os.Getenv("ENV")

	// Step 1: Load from INI
	if err := file.Section(runMode).MapTo(target); err != nil {
		return err
	}

	// Step 2: Override from ENV
	if err := dotenv.LoadEnv(); err != nil {
		return err
	}

	return env.Parse(target)
}
