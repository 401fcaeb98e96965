package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	pErrors "github.com/zhubert/scribe/internal/errors"
)

// Defaults for a fresh install.
const (
	DefaultBaseURL              = "http://localhost:11434"
	DefaultModel                = "llama3.2:3b"
	DefaultBinary               = "ollama"
	DefaultGenerateTimeoutSecs  = 300
	DefaultProbeTimeoutSecs     = 2
	DefaultRetryIntervalSecs    = 5
	DefaultPollIntervalSecs     = 10
	DefaultTheme                = "dark-purple"
	DefaultNotificationsEnabled = false
)

// OllamaConfig configures the inference server connection.
type OllamaConfig struct {
	BaseURL                string `mapstructure:"base_url" yaml:"base_url"`
	Model                  string `mapstructure:"model" yaml:"model"`
	Autostart              bool   `mapstructure:"autostart" yaml:"autostart"`
	Binary                 string `mapstructure:"binary" yaml:"binary"`
	GenerateTimeoutSeconds int    `mapstructure:"generate_timeout_seconds" yaml:"generate_timeout_seconds"`
}

// MonitorConfig configures the availability probe cadence.
type MonitorConfig struct {
	ProbeTimeoutSeconds  int `mapstructure:"probe_timeout_seconds" yaml:"probe_timeout_seconds"`
	RetryIntervalSeconds int `mapstructure:"retry_interval_seconds" yaml:"retry_interval_seconds"`
	PollIntervalSeconds  int `mapstructure:"poll_interval_seconds" yaml:"poll_interval_seconds"`
}

// Config holds the application configuration
type Config struct {
	Ollama               OllamaConfig  `mapstructure:"ollama" yaml:"ollama"`
	Monitor              MonitorConfig `mapstructure:"monitor" yaml:"monitor"`
	Theme                string        `mapstructure:"theme" yaml:"theme"`
	NotificationsEnabled bool          `mapstructure:"notifications_enabled" yaml:"notifications_enabled"`

	mu       sync.RWMutex
	filePath string
}

// Default returns a Config populated with built-in defaults. It is not
// bound to a file; Save on it writes to the default location.
func Default() *Config {
	return &Config{
		Ollama: OllamaConfig{
			BaseURL:                DefaultBaseURL,
			Model:                  DefaultModel,
			Autostart:              true,
			Binary:                 DefaultBinary,
			GenerateTimeoutSeconds: DefaultGenerateTimeoutSecs,
		},
		Monitor: MonitorConfig{
			ProbeTimeoutSeconds:  DefaultProbeTimeoutSecs,
			RetryIntervalSeconds: DefaultRetryIntervalSecs,
			PollIntervalSeconds:  DefaultPollIntervalSecs,
		},
		Theme:                DefaultTheme,
		NotificationsEnabled: DefaultNotificationsEnabled,
	}
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scribe"), nil
}

// DefaultPath returns the path to the config file in the user's home.
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path (DefaultPath when empty). A missing file
// yields the defaults. OLLAMA_HOST overrides ollama.base_url the way the
// ollama CLI does.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	def := Default()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("ollama.base_url", def.Ollama.BaseURL)
	v.SetDefault("ollama.model", def.Ollama.Model)
	v.SetDefault("ollama.autostart", def.Ollama.Autostart)
	v.SetDefault("ollama.binary", def.Ollama.Binary)
	v.SetDefault("ollama.generate_timeout_seconds", def.Ollama.GenerateTimeoutSeconds)
	v.SetDefault("monitor.probe_timeout_seconds", def.Monitor.ProbeTimeoutSeconds)
	v.SetDefault("monitor.retry_interval_seconds", def.Monitor.RetryIntervalSeconds)
	v.SetDefault("monitor.poll_interval_seconds", def.Monitor.PollIntervalSeconds)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("notifications_enabled", def.NotificationsEnabled)
	_ = v.BindEnv("ollama.base_url", "OLLAMA_HOST")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return nil, pErrors.ConfigLoadFailed(path, err)
		}
	}

	cfg := &Config{filePath: path}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, pErrors.ConfigLoadFailed(path, err)
	}
	cfg.Ollama.BaseURL = normalizeBaseURL(cfg.Ollama.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalizeBaseURL accepts OLLAMA_HOST style values such as "0.0.0.0:11434".
func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	parsed, err := url.Parse(c.Ollama.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return pErrors.ConfigInvalid(fmt.Sprintf("ollama.base_url must include scheme and host, got %q", c.Ollama.BaseURL))
	}
	if strings.TrimSpace(c.Ollama.Model) == "" {
		return pErrors.ConfigInvalid("ollama.model must not be empty")
	}
	if c.Ollama.GenerateTimeoutSeconds <= 0 {
		return pErrors.ConfigInvalid("ollama.generate_timeout_seconds must be positive")
	}
	if c.Monitor.ProbeTimeoutSeconds <= 0 {
		return pErrors.ConfigInvalid("monitor.probe_timeout_seconds must be positive")
	}
	if c.Monitor.RetryIntervalSeconds <= 0 || c.Monitor.PollIntervalSeconds <= 0 {
		return pErrors.ConfigInvalid("monitor intervals must be positive")
	}
	return nil
}

// Save writes the config to its file, creating the directory if needed.
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return pErrors.ConfigSaveFailed(path, err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return pErrors.ConfigSaveFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return pErrors.ConfigSaveFailed(path, err)
	}
	return nil
}

// Path returns the file this config was loaded from.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetBaseURL returns the inference server base URL
func (c *Config) GetBaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Ollama.BaseURL
}

// SetBaseURL sets the inference server base URL
func (c *Config) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Ollama.BaseURL = normalizeBaseURL(baseURL)
}

// GetModel returns the model used for AI actions
func (c *Config) GetModel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Ollama.Model
}

// SetModel sets the model used for AI actions
func (c *Config) SetModel(model string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Ollama.Model = model
}

// GetAutostart returns whether scribe starts `ollama serve` when no server answers
func (c *Config) GetAutostart() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Ollama.Autostart
}

// SetAutostart sets whether scribe starts the server itself
func (c *Config) SetAutostart(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Ollama.Autostart = enabled
}

// GetBinary returns the ollama executable name or path
func (c *Config) GetBinary() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Ollama.Binary
}

// GenerateTimeout bounds a single generate request.
func (c *Config) GenerateTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.Ollama.GenerateTimeoutSeconds) * time.Second
}

// ProbeTimeout bounds a single availability probe.
func (c *Config) ProbeTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.Monitor.ProbeTimeoutSeconds) * time.Second
}

// RetryInterval is the re-probe delay while the server is unavailable.
func (c *Config) RetryInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.Monitor.RetryIntervalSeconds) * time.Second
}

// PollInterval is the steady probe cadence regardless of state.
func (c *Config) PollInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.Monitor.PollIntervalSeconds) * time.Second
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}
