package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/relaykit/feishu-relay/internal/feishu"
)

const (
	defaultAddr             = ":8080"
	defaultShutdownGrace    = 10 * time.Second
	defaultWriteBurst       = 3
	defaultHeartbeatCron    = "0 9 * * *"
	defaultHeartbeatMessage = "feishu-relay heartbeat"
)

// Config is the complete relay configuration. Values resolve in three layers:
// built-in defaults, then an optional YAML file, then FEISHU_RELAY_* env vars.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig controls the HTTP gateway surface. Token and WriteRateRPS are
// both opt-in: left at zero, invocations are neither authenticated nor rate
// limited.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	Token          string        `yaml:"token"`
	WriteRateRPS   float64       `yaml:"write_rate_rps"`
	WriteRateBurst int           `yaml:"write_rate_burst"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace"`
}

// WebhookConfig controls the outbound Feishu client. URL is the default
// webhook used by the CLI and the heartbeat; gateway invocations carry their
// own.
type WebhookConfig struct {
	URL            string        `yaml:"url"`
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	Timeout        time.Duration `yaml:"timeout"`
}

// HeartbeatConfig controls the scheduled liveness notification.
type HeartbeatConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
	Message  string `yaml:"message"`
	Title    string `yaml:"title"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:           defaultAddr,
			WriteRateBurst: defaultWriteBurst,
			ShutdownGrace:  defaultShutdownGrace,
		},
		Webhook: WebhookConfig{
			MaxAttempts:    feishu.DefaultMaxAttempts,
			InitialBackoff: feishu.DefaultInitialBackoff,
			Timeout:        feishu.DefaultConnectTimeout + feishu.DefaultReadTimeout,
		},
		Heartbeat: HeartbeatConfig{
			Enabled:  false,
			Schedule: defaultHeartbeatCron,
			Message:  defaultHeartbeatMessage,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load resolves the configuration. path may be empty, in which case the
// FEISHU_RELAY_CONFIG env var is consulted; with neither set, no file is
// read. A .env file in the working directory is loaded first so container
// deployments can ship env defaults alongside the binary.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if path == "" {
		path = os.Getenv("FEISHU_RELAY_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with FEISHU_RELAY_* environment variables.
func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("FEISHU_RELAY_ADDR", c.Server.Addr)
	c.Server.Token = getEnv("FEISHU_RELAY_TOKEN", c.Server.Token)
	c.Server.WriteRateRPS = getEnvFloat("FEISHU_RELAY_WRITE_RPS", c.Server.WriteRateRPS)
	c.Server.WriteRateBurst = getEnvInt("FEISHU_RELAY_WRITE_BURST", c.Server.WriteRateBurst)
	c.Server.ShutdownGrace = getEnvDuration("FEISHU_RELAY_SHUTDOWN_GRACE", c.Server.ShutdownGrace)

	c.Webhook.URL = getEnv("FEISHU_RELAY_WEBHOOK_URL", c.Webhook.URL)
	c.Webhook.MaxAttempts = getEnvInt("FEISHU_RELAY_MAX_ATTEMPTS", c.Webhook.MaxAttempts)
	c.Webhook.InitialBackoff = getEnvDuration("FEISHU_RELAY_INITIAL_BACKOFF", c.Webhook.InitialBackoff)
	c.Webhook.Timeout = getEnvDuration("FEISHU_RELAY_TIMEOUT", c.Webhook.Timeout)

	c.Heartbeat.Enabled = getEnvBool("FEISHU_RELAY_HEARTBEAT_ENABLED", c.Heartbeat.Enabled)
	c.Heartbeat.Schedule = getEnv("FEISHU_RELAY_HEARTBEAT_SCHEDULE", c.Heartbeat.Schedule)
	c.Heartbeat.Message = getEnv("FEISHU_RELAY_HEARTBEAT_MESSAGE", c.Heartbeat.Message)
	c.Heartbeat.Title = getEnv("FEISHU_RELAY_HEARTBEAT_TITLE", c.Heartbeat.Title)

	c.Log.Level = getEnv("FEISHU_RELAY_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("FEISHU_RELAY_LOG_FORMAT", c.Log.Format)
}

// Validate ensures configuration is reasonable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr required")
	}
	if c.Server.WriteRateRPS < 0 {
		return fmt.Errorf("write rate must not be negative")
	}
	if c.Server.WriteRateRPS > 0 && c.Server.WriteRateBurst < 1 {
		return fmt.Errorf("write burst must be at least 1")
	}
	if c.Webhook.URL != "" && !strings.HasPrefix(c.Webhook.URL, "https://") {
		return fmt.Errorf("webhook url must start with https://")
	}
	if c.Webhook.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1")
	}
	if c.Webhook.InitialBackoff <= 0 {
		return fmt.Errorf("initial backoff must be positive")
	}
	if c.Webhook.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Heartbeat.Enabled {
		if c.Webhook.URL == "" {
			return fmt.Errorf("webhook url required when heartbeat enabled")
		}
		if _, err := cron.ParseStandard(c.Heartbeat.Schedule); err != nil {
			return fmt.Errorf("invalid heartbeat cron: %w", err)
		}
		if strings.TrimSpace(c.Heartbeat.Message) == "" {
			return fmt.Errorf("heartbeat message required when enabled")
		}
	}
	return nil
}

// ClientOptions translates the webhook section into feishu client options.
func (c Config) ClientOptions() []feishu.Option {
	return []feishu.Option{
		feishu.WithMaxAttempts(c.Webhook.MaxAttempts),
		feishu.WithInitialBackoff(c.Webhook.InitialBackoff),
		feishu.WithTimeout(c.Webhook.Timeout),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
