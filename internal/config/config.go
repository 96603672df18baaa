package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration (file + env overrides)
type Config struct {
	Agent struct {
		UserID    string `mapstructure:"user_id"`
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
		StateFile string `mapstructure:"state_file"`
	} `mapstructure:"agent"`

	Backend struct {
		BaseURL        string  `mapstructure:"base_url"`
		TimeoutSeconds int     `mapstructure:"timeout_seconds"`
		RequestsPerSec float64 `mapstructure:"requests_per_sec"`
		Burst          int     `mapstructure:"burst"`
	} `mapstructure:"backend"`

	Diagnostics struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"diagnostics"`

	Ads struct {
		AdsGramBlockID    int `mapstructure:"adsgram_block_id"`
		OnClickACodeID    int `mapstructure:"onclicka_code_id"`
		WatchSeconds      int `mapstructure:"watch_seconds"`
		FallbackSeconds   int `mapstructure:"fallback_seconds"`
		ShrinkEarnWaitSec int `mapstructure:"shrinkearn_wait_seconds"`
	} `mapstructure:"ads"`

	Poll struct {
		BoostSeconds    int `mapstructure:"boost_seconds"`
		PtsSeconds      int `mapstructure:"pts_seconds"`
		DBStatusSeconds int `mapstructure:"db_status_seconds"`
	} `mapstructure:"poll"`
}

func Load() Config {
	v := viper.New()
	v.SetConfigName("application")
	v.SetConfigType("yaml")
	v.AddConfigPath("configs")
	_ = v.ReadInConfig() // optional; env can fully configure

	v.SetEnvPrefix("MIBOT")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Errorf("unable to decode config: %w", err))
	}
	validate(&cfg)
	return cfg
}

// validate applies defaults. User identity: explicit config wins, then the
// MIBOT_USER_ID environment variable, otherwise empty (flows will refuse).
func validate(c *Config) {
	if c.Agent.UserID == "" {
		c.Agent.UserID = os.Getenv("MIBOT_USER_ID")
	}
	if c.Agent.LogFormat == "" {
		c.Agent.LogFormat = "console"
	}
	if c.Agent.StateFile == "" {
		c.Agent.StateFile = "mibot-state.json"
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:5000"
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 10
	}
	if c.Backend.RequestsPerSec <= 0 {
		c.Backend.RequestsPerSec = 5
	}
	if c.Backend.Burst <= 0 {
		c.Backend.Burst = 10
	}
	if c.Diagnostics.Addr == "" {
		c.Diagnostics.Addr = ":8080"
	}
	if c.Ads.AdsGramBlockID == 0 {
		c.Ads.AdsGramBlockID = 20479
	}
	if c.Ads.OnClickACodeID == 0 {
		c.Ads.OnClickACodeID = 408797
	}
	if c.Ads.WatchSeconds <= 0 {
		c.Ads.WatchSeconds = 15
	}
	if c.Ads.FallbackSeconds <= 0 {
		c.Ads.FallbackSeconds = 30
	}
	if c.Ads.ShrinkEarnWaitSec <= 0 {
		c.Ads.ShrinkEarnWaitSec = 30
	}
	if c.Poll.BoostSeconds <= 0 {
		c.Poll.BoostSeconds = 10
	}
	if c.Poll.PtsSeconds <= 0 {
		c.Poll.PtsSeconds = 30
	}
	if c.Poll.DBStatusSeconds <= 0 {
		c.Poll.DBStatusSeconds = 30
	}
}

func (c Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

func (c Config) BoostPollInterval() time.Duration {
	return time.Duration(c.Poll.BoostSeconds) * time.Second
}

func (c Config) PtsPollInterval() time.Duration {
	return time.Duration(c.Poll.PtsSeconds) * time.Second
}

func (c Config) DBStatusPollInterval() time.Duration {
	return time.Duration(c.Poll.DBStatusSeconds) * time.Second
}
