package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. WORDRUSH_SERVER_PORT
const EnvPrefix = "WORDRUSH"

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Game       GameConfig
	Dictionary DictionaryConfig
	Store      StoreConfig
	NATS       NATSConfig
	Logging    LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	Duration      time.Duration
	Retention     time.Duration
	SweepInterval time.Duration
	CodeAttempts  int
}

// DictionaryConfig points at the word list
type DictionaryConfig struct {
	Path string
}

// StoreConfig selects and configures the round store
type StoreConfig struct {
	Backend       string // "memory", "file" or "sqlite"
	Dir           string
	SQLitePath    string
	RetryAttempts uint
	RetryDelay    time.Duration
}

// NATSConfig configures event publishing. An empty URL disables NATS.
type NATSConfig struct {
	URL     string
	Subject string
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "console"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.env", "development")

	v.SetDefault("game.duration", 120*time.Second)
	v.SetDefault("game.retention", 24*time.Hour)
	v.SetDefault("game.sweep_interval", 10*time.Minute)
	v.SetDefault("game.code_attempts", 10)

	v.SetDefault("dictionary.path", "./data/words.txt")

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.dir", "./data/games")
	v.SetDefault("store.sqlite_path", "./data/wordrush.db")
	v.SetDefault("store.retry_attempts", 3)
	v.SetDefault("store.retry_delay", 50*time.Millisecond)

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject", "wordrush.events")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads configuration from defaults, an optional config file and
// WORDRUSH_* environment variables, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
			Host: v.GetString("server.host"),
			Env:  v.GetString("server.env"),
		},
		Game: GameConfig{
			Duration:      v.GetDuration("game.duration"),
			Retention:     v.GetDuration("game.retention"),
			SweepInterval: v.GetDuration("game.sweep_interval"),
			CodeAttempts:  v.GetInt("game.code_attempts"),
		},
		Dictionary: DictionaryConfig{
			Path: v.GetString("dictionary.path"),
		},
		Store: StoreConfig{
			Backend:       strings.ToLower(v.GetString("store.backend")),
			Dir:           v.GetString("store.dir"),
			SQLitePath:    v.GetString("store.sqlite_path"),
			RetryAttempts: v.GetUint("store.retry_attempts"),
			RetryDelay:    v.GetDuration("store.retry_delay"),
		},
		NATS: NATSConfig{
			URL:     v.GetString("nats.url"),
			Subject: v.GetString("nats.subject"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Game.Duration < time.Second {
		return fmt.Errorf("game.duration must be at least 1s, got %s", c.Game.Duration)
	}
	if c.Game.Retention <= 0 {
		return fmt.Errorf("game.retention must be positive, got %s", c.Game.Retention)
	}
	if c.Game.SweepInterval <= 0 {
		return fmt.Errorf("game.sweep_interval must be positive, got %s", c.Game.SweepInterval)
	}
	if c.Game.CodeAttempts < 1 {
		return fmt.Errorf("game.code_attempts must be at least 1, got %d", c.Game.CodeAttempts)
	}
	switch c.Store.Backend {
	case "memory", "file", "sqlite":
	default:
		return fmt.Errorf("unknown store.backend %q", c.Store.Backend)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
