package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Planner
	Planner PlannerConfig
	Storage StorageConfig

	// Integrations
	Telegram       TelegramConfig
	GoogleCalendar GoogleCalendarConfig
	ICS            ICSConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	RequestsPerMin int
	MaxClients     int
}

// PlannerConfig holds the scheduling settings shared by every entry point.
type PlannerConfig struct {
	Timezone        string
	WindowDays      int
	RefreshCron     string
	ReminderOffset  time.Duration
	DefaultDuration time.Duration
	// Periods overrides the hour of named day periods ("morning": "09:00").
	Periods map[string]string
}

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type StorageConfig struct {
	Driver string
	Path   string
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
	// NgrokAPI is the local ngrok API used to discover a public webhook URL
	// when WebhookURL is empty.
	NgrokAPI     string
	AllowedChats []int64
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarIDs     []string
	Color           string
}

// Enabled reports whether a Google Calendar source should be built.
func (c GoogleCalendarConfig) Enabled() bool {
	return c.CredentialsPath != ""
}

type ICSConfig struct {
	Feeds []FeedConfig
}

type FeedConfig struct {
	ID    string
	URL   string
	Color string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/planner/.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/planner/")
	return load(v)
}

// LoadFile loads configuration from an explicit file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// A missing config.yaml is fine, defaults and the environment apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.RateLimit.RequestsPerMin = v.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.MaxClients = v.GetInt("rate_limit.max_clients")

	// Planner
	cfg.Planner.Timezone = v.GetString("planner.timezone")
	cfg.Planner.WindowDays = v.GetInt("planner.window_days")
	cfg.Planner.RefreshCron = v.GetString("planner.refresh_cron")
	cfg.Planner.ReminderOffset = v.GetDuration("planner.reminder_offset")
	cfg.Planner.DefaultDuration = v.GetDuration("planner.default_duration")
	cfg.Planner.Periods = v.GetStringMapString("planner.periods")

	cfg.Storage.Driver = strings.ToLower(v.GetString("storage.driver"))
	cfg.Storage.Path = v.GetString("storage.path")

	// Telegram
	cfg.Telegram.BotToken = expandEnvVar(v, v.GetString("telegram.bot_token"))
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.NgrokAPI = v.GetString("telegram.ngrok_api")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	chats, err := parseChatIDs(v.Get("telegram.allowed_chats"))
	if err != nil {
		return nil, err
	}
	cfg.Telegram.AllowedChats = chats

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = v.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarIDs = splitList(v.GetStringSlice("google_calendar.calendar_ids"))
	cfg.GoogleCalendar.Color = v.GetString("google_calendar.color")
	if googleCreds := v.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// ICS subscriptions
	if v.IsSet("ics.feeds") {
		if feedList, ok := v.Get("ics.feeds").([]interface{}); ok {
			for i, f := range feedList {
				feedMap, ok := f.(map[string]interface{})
				if !ok {
					continue
				}
				feed := FeedConfig{
					ID:    getStringFromMap(feedMap, "id"),
					URL:   expandEnvVar(v, getStringFromMap(feedMap, "url")),
					Color: getStringFromMap(feedMap, "color"),
				}
				if feed.ID == "" {
					feed.ID = fmt.Sprintf("feed-%d", i+1)
				}
				cfg.ICS.Feeds = append(cfg.ICS.Feeds, feed)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("rate_limit.requests_per_min", 120)
	v.SetDefault("rate_limit.max_clients", 1000)

	v.SetDefault("planner.timezone", "UTC")
	v.SetDefault("planner.window_days", 30)
	v.SetDefault("planner.refresh_cron", "@daily")
	v.SetDefault("planner.reminder_offset", "15m")
	v.SetDefault("planner.default_duration", "30m")

	v.SetDefault("storage.driver", StorageMemory)
	v.SetDefault("storage.path", "planner.db")

	v.SetDefault("google_calendar.token_path", "token.json")
	v.SetDefault("google_calendar.calendar_ids", []string{"primary"})
}

func (c *Config) validate() error {
	if _, err := time.LoadLocation(c.Planner.Timezone); err != nil {
		return fmt.Errorf("planner.timezone: %w", err)
	}
	if c.Planner.WindowDays < 0 {
		return fmt.Errorf("planner.window_days must not be negative, got %d", c.Planner.WindowDays)
	}
	if c.Planner.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.Planner.RefreshCron); err != nil {
			return fmt.Errorf("planner.refresh_cron: %w", err)
		}
	}
	for name, hm := range c.Planner.Periods {
		if _, err := time.Parse("15:04", hm); err != nil {
			return fmt.Errorf("planner.periods.%s: want HH:MM, got %q", name, hm)
		}
	}
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	for _, f := range c.ICS.Feeds {
		if f.URL == "" {
			return fmt.Errorf("ics feed %s: url is required", f.ID)
		}
	}
	return nil
}

// expandEnvVar expands values written as ${VAR_NAME}.
func expandEnvVar(v *viper.Viper, value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}
	envVar := value[2 : len(value)-1]
	if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

// splitList flattens comma separated entries, as lists set from the
// environment arrive as a single string.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseChatIDs(raw interface{}) ([]int64, error) {
	var items []string
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		items = splitList([]string{v})
	case []interface{}:
		for _, item := range v {
			items = append(items, fmt.Sprint(item))
		}
	default:
		items = []string{fmt.Sprint(v)}
	}

	ids := make([]int64, 0, len(items))
	for _, item := range items {
		var id int64
		if _, err := fmt.Sscan(item, &id); err != nil {
			return nil, fmt.Errorf("telegram.allowed_chats: invalid chat id %q", item)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
