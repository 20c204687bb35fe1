package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// App Settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// Catalog Source
	APIURL      string        `envconfig:"API_URL" default:"https://api.nordvpn.com/server"`
	FixturePath string        `envconfig:"FIXTURE_PATH"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Latency Ranking
	UsePing        bool          `envconfig:"USE_PING" default:"false"`
	PingStrategy   string        `envconfig:"PING_STRATEGY" default:"batched"`
	PingTries      int           `envconfig:"PING_TRIES" default:"2"`
	PingCandidates int           `envconfig:"PING_CANDIDATES" default:"10"`
	PingTimeout    time.Duration `envconfig:"PING_TIMEOUT" default:"2s"`
	PingPrivileged bool          `envconfig:"PING_PRIVILEGED" default:"false"`
	PingRate       float64       `envconfig:"PING_RATE" default:"0"` // probes/sec, 0 = unpaced

	// Allow/Deny Lists (file path or URL, one domain per line)
	Whitelist string `envconfig:"WHITELIST"`
	Blacklist string `envconfig:"BLACKLIST"`

	// Output
	PrintDomain bool   `envconfig:"PRINT_DOMAIN" default:"false"`
	OutputPath  string `envconfig:"OUTPUT_PATH"`
	OutputLimit int    `envconfig:"OUTPUT_LIMIT" default:"10"`

	// Optional Integrations
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `envconfig:"TELEGRAM_CHAT_ID"`
	GeoIPPath        string `envconfig:"GEOIP_PATH"`
}

// Load reads .env and processes environment variables.
func Load() (*Config, error) {
	// Silently ignore if .env is missing (production might use real ENV vars)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return &cfg, nil
}
