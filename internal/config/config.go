package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server    ServerConfig
	App       AppConfig
	Log       LogConfig
	Auction   AuctionConfig
	Session   SessionConfig
	WebSocket WebSocketConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	StaticDir       string        `envconfig:"SERVER_STATIC_DIR" default:"./static"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"auction-live-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// LogConfig controls the global zerolog logger.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"true"`
}

// AuctionConfig holds the simulation parameters.
type AuctionConfig struct {
	TickInterval         time.Duration `envconfig:"AUCTION_TICK_INTERVAL" default:"1s"`
	Duration             int           `envconfig:"AUCTION_DURATION" default:"60"` // seconds on the clock for every seeded item
	RandomBidProbability float64       `envconfig:"AUCTION_RANDOM_BID_PROBABILITY" default:"0.2"`
	RandomBidMin         int64         `envconfig:"AUCTION_RANDOM_BID_MIN" default:"50000"`
	RandomBidSpan        int64         `envconfig:"AUCTION_RANDOM_BID_SPAN" default:"100000"`
	RandomBidder         string        `envconfig:"AUCTION_RANDOM_BIDDER" default:"Random Bidder"`
	RandomSeed           uint64        `envconfig:"AUCTION_RANDOM_SEED" default:"0"` // 0 = seeded from the runtime
	BidStep              int64         `envconfig:"AUCTION_BID_STEP" default:"50000"`
	HistoryLimit         int           `envconfig:"AUCTION_HISTORY_LIMIT" default:"5"`
	DefaultBidder        string        `envconfig:"AUCTION_DEFAULT_BIDDER" default:"You"`
	AcceptAfterClose     bool          `envconfig:"AUCTION_ACCEPT_AFTER_CLOSE" default:"false"`
}

// SessionConfig holds bid session cache settings.
type SessionConfig struct {
	TTL           time.Duration `envconfig:"SESSION_TTL" default:"10m"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
}

// WebSocketConfig holds settings for the live snapshot feed.
type WebSocketConfig struct {
	WriteTimeout    time.Duration `envconfig:"WS_WRITE_TIMEOUT" default:"10s"`
	ReadTimeout     time.Duration `envconfig:"WS_READ_TIMEOUT" default:"60s"`
	PingInterval    time.Duration `envconfig:"WS_PING_INTERVAL" default:"30s"`
	MaxMessageSize  int64         `envconfig:"WS_MAX_MESSAGE_SIZE" default:"1024"`
	SendBufferSize  int           `envconfig:"WS_SEND_BUFFER" default:"64"`
	ReadBufferSize  int           `envconfig:"WS_READ_BUFFER_SIZE" default:"1024"`
	WriteBufferSize int           `envconfig:"WS_WRITE_BUFFER_SIZE" default:"4096"`
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// LogLevel returns the zerolog level name to run with. APP_DEBUG forces debug
// outside production.
func (c *Config) LogLevel() string {
	if c.App.Debug && !c.App.IsProduction() {
		return "debug"
	}
	return c.Log.Level
}

// PrettyLogs reports whether logs go to the console writer. Production always
// logs JSON.
func (c *Config) PrettyLogs() bool {
	return c.Log.Pretty && !c.App.IsProduction()
}

// Validate rejects simulation settings the tick engine cannot run with.
func (a *AuctionConfig) Validate() error {
	switch {
	case a.TickInterval <= 0:
		return errors.New("AUCTION_TICK_INTERVAL must be positive")
	case a.Duration < 0:
		return errors.New("AUCTION_DURATION must not be negative")
	case a.RandomBidProbability < 0 || a.RandomBidProbability > 1:
		return errors.New("AUCTION_RANDOM_BID_PROBABILITY must be within [0, 1]")
	case a.RandomBidMin <= 0:
		return errors.New("AUCTION_RANDOM_BID_MIN must be positive")
	case a.RandomBidSpan <= 0:
		return errors.New("AUCTION_RANDOM_BID_SPAN must be positive")
	case a.BidStep <= 0:
		return errors.New("AUCTION_BID_STEP must be positive")
	case a.HistoryLimit <= 0:
		return errors.New("AUCTION_HISTORY_LIMIT must be positive")
	}
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Auction.Validate(); err != nil {
		return nil, fmt.Errorf("invalid auction config: %w", err)
	}
	if cfg.Session.TTL <= 0 {
		return nil, errors.New("invalid session config: SESSION_TTL must be positive")
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
