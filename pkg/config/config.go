package config

import (
	"log"
	"os"
	"time"

	"GuardHer/pkg/logger"
	"GuardHer/pkg/util"
)

// config/config.go
type Config struct {
	Addr      string `env:"ADDR"`
	Mode      string `env:"MODE"`
	APIPrefix string `env:"API_PREFIX"`

	// Tokens for the thin auth layer. User token protects the SOS surface,
	// admin token protects analytics.
	AdminToken string `env:"ADMIN_TOKEN"`
	UserToken  string `env:"USER_TOKEN"`

	// Risk classifier strategy and thresholds
	ClassifierStrategy   string   `env:"CLASSIFIER_STRATEGY"`
	ImageRiskThreshold   float64  `env:"IMAGE_RISK_THRESHOLD"`
	AudioRiskThreshold   float64  `env:"AUDIO_RISK_THRESHOLD"`
	TextHighRiskKeywords []string `env:"TEXT_HIGH_RISK_KEYWORDS"`

	// SOS service
	LiveLocationTTL time.Duration `env:"LIVE_LOCATION_TTL_MS"`

	// Analytics
	AnalyticsPageSize int `env:"ANALYTICS_PAGE_SIZE"`

	// Rate limiting, e.g. "100-M"
	RateLimit string `env:"RATE_LIMIT"`

	Log logger.LogConfig
}

var GlobalConfig *Config

func Load() error {
	// 1. 根据环境加载 .env 文件
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	err := util.LoadEnv(env)
	if err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	// 2. 加载全局配置
	GlobalConfig = &Config{
		Addr:                 util.GetEnv("ADDR", ":3000"),
		Mode:                 util.GetEnv("MODE", "debug"),
		APIPrefix:            util.GetEnv("API_PREFIX", "/api"),
		AdminToken:           util.GetEnv("ADMIN_TOKEN", "supersecureadmintoken"),
		UserToken:            util.GetEnv("USER_TOKEN", "defaultusertoken"),
		ClassifierStrategy:   util.GetEnv("CLASSIFIER_STRATEGY", "probabilistic"),
		ImageRiskThreshold:   util.GetFloatEnv("IMAGE_RISK_THRESHOLD", 0.3),
		AudioRiskThreshold:   util.GetFloatEnv("AUDIO_RISK_THRESHOLD", 0.2),
		TextHighRiskKeywords: util.GetSliceEnv("TEXT_HIGH_RISK_KEYWORDS", []string{"help", "emergency", "attack"}),
		LiveLocationTTL:      time.Duration(util.GetIntEnv("LIVE_LOCATION_TTL_MS", 5*60*1000)) * time.Millisecond,
		AnalyticsPageSize:    int(util.GetIntEnv("ANALYTICS_PAGE_SIZE", 20)),
		RateLimit:            util.GetEnv("RATE_LIMIT", "100-M"),
		Log: logger.LogConfig{
			Level:      util.GetEnv("LOG_LEVEL"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnv("LOG_MAX_SIZE")),
			MaxAge:     int(util.GetIntEnv("LOG_MAX_AGE")),
			MaxBackups: int(util.GetIntEnv("LOG_MAX_BACKUPS")),
		},
	}
	return nil
}
