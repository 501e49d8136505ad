// Package config handles the XDG configuration directory and config.yaml.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// EnvPrefix prefixes environment overrides (TASKBOARD_BASE_URL, ...).
	EnvPrefix = "TASKBOARD"

	// DefaultBaseURL is the API origin used when none is configured.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultCookieName is the session cookie set by the server on login.
	DefaultCookieName = "JSESSIONID"

	// DefaultTimeout bounds every API call.
	DefaultTimeout = 5 * time.Second
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the API origin, e.g. http://localhost:8080.
	BaseURL string

	// Token, when set, is sent as a bearer token.
	Token string

	// SessionCookie is the value of an existing login session.
	SessionCookie string

	// CookieName names the session cookie.
	CookieName string

	// Timeout bounds each API call.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Log receives diagnostics. Nil discards them.
	Log logrus.FieldLogger
}

// New creates a Config from the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
// A missing config.yaml is not an error; defaults and environment apply.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	if err := cfg.load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) load() error {
	v := viper.New()
	v.SetConfigFile(c.Path())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("cookie_name", DefaultCookieName)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("token", "")
	v.SetDefault("session_cookie", "")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read %s: %w", c.Path(), err)
		}
	}

	c.BaseURL = strings.TrimRight(v.GetString("base_url"), "/")
	c.Token = v.GetString("token")
	c.SessionCookie = v.GetString("session_cookie")
	c.CookieName = v.GetString("cookie_name")
	c.Timeout = v.GetDuration("timeout")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to config.yaml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// HasCredentials reports whether a token or session cookie is configured.
func (c *Config) HasCredentials() bool {
	return c.Token != "" || c.SessionCookie != ""
}

// SetBaseURL overrides the configured API origin after validating it.
func (c *Config) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url: %s", raw)
	}
	c.BaseURL = strings.TrimRight(raw, "/")
	return nil
}

// Logger returns the configured logger, or one that discards everything.
func (c *Config) Logger() logrus.FieldLogger {
	if c.Log != nil {
		return c.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
