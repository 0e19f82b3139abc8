// Package config resolves runtime settings from defaults, a YAML file and TODOSYNC_* variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL          = "https://mate.academy/students-api"
	DefaultErrorTimeoutMS   = 3000
	DefaultRequestTimeoutMS = 10000
	DefaultLogFile          = "todosync.log"
	DefaultServerAddr       = ":3000"
	DefaultDatabasePath     = "todos.db"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Runtime struct {
	UserID           int    `yaml:"user_id" validate:"gte=0"`
	BaseURL          string `yaml:"base_url" validate:"required,url"`
	ErrorTimeoutMS   int    `yaml:"error_timeout_ms" validate:"gt=0"`
	RequestTimeoutMS int    `yaml:"request_timeout_ms" validate:"gt=0"`
	Debug            bool   `yaml:"debug"`
	LogFile          string `yaml:"log_file" validate:"required_if=Debug true"`
	ServerAddr       string `yaml:"server_addr" validate:"required"`
	DatabasePath     string `yaml:"database_path" validate:"required"`
}

func Default() Runtime {
	return Runtime{
		UserID:           0,
		BaseURL:          DefaultBaseURL,
		ErrorTimeoutMS:   DefaultErrorTimeoutMS,
		RequestTimeoutMS: DefaultRequestTimeoutMS,
		LogFile:          DefaultLogFile,
		ServerAddr:       DefaultServerAddr,
		DatabasePath:     DefaultDatabasePath,
	}
}

// Load overlays the YAML file at path onto base. A missing file is not an error.
func Load(path string, base Runtime) (Runtime, error) {
	cfg := base
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", trimmed, err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return cfg, nil
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", trimmed, err)
	}
	return cfg, nil
}

func FromEnv(base Runtime) Runtime {
	cfg := base
	if v, ok := getEnvInt("TODOSYNC_USER_ID"); ok {
		cfg.UserID = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOSYNC_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v, ok := getEnvInt("TODOSYNC_ERROR_TIMEOUT_MS"); ok && v > 0 {
		cfg.ErrorTimeoutMS = v
	}
	if v, ok := getEnvInt("TODOSYNC_REQUEST_TIMEOUT_MS"); ok && v > 0 {
		cfg.RequestTimeoutMS = v
	}
	if v, ok := getEnvBool("TODOSYNC_DEBUG"); ok {
		cfg.Debug = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOSYNC_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOSYNC_SERVER_ADDR")); v != "" {
		cfg.ServerAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("TODOSYNC_DB")); v != "" {
		cfg.DatabasePath = v
	}
	return cfg
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (r Runtime) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalidConfig, first.Field(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// HasIdentity reports whether a usable user id is configured.
func (r Runtime) HasIdentity() bool {
	return r.UserID > 0
}

func (r Runtime) ErrorTimeout() time.Duration {
	return time.Duration(r.ErrorTimeoutMS) * time.Millisecond
}

func (r Runtime) RequestTimeout() time.Duration {
	return time.Duration(r.RequestTimeoutMS) * time.Millisecond
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
