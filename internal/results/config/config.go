package config

import (
	"time"

	"golang-stock-resultstore/pkg/config"
)

// Results holds configuration for the results writer and reader.
type Results struct {
	WritesPerMinute            int           `mapstructure:"writes_per_minute"`
	CacheTTL                   time.Duration `mapstructure:"cache_ttl"`
	RedisStreamAnalysisTimeout time.Duration `mapstructure:"redis_stream_analysis_timeout"`
}

// Pruner holds configuration for the stale-data pruner.
type Pruner struct {
	Enabled   bool          `mapstructure:"enabled"`
	Schedule  string        `mapstructure:"schedule"`
	Retention time.Duration `mapstructure:"retention"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the results service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Results  Results         `mapstructure:"results"`
	Pruner   Pruner          `mapstructure:"pruner"`
	Telegram Telegram        `mapstructure:"telegram"`
}

// Load loads the results service configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
