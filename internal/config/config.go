package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Insight   InsightConfig
	Printer   PrinterConfig
	Log       LogConfig
}

type AppConfig struct {
	Name         string
	Env          string
	Port         string
	Debug        bool
	SeedDemoData bool
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type InsightConfig struct {
	// OpenAIAPIKey may be empty; insight generation then fails closed into
	// the deterministic local fallback.
	OpenAIAPIKey string
	Model        string
	Timeout      time.Duration
}

type PrinterConfig struct {
	Type    string // network or none
	Address string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "tinova-pos")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("INSIGHT_TIMEOUT_SECONDS", 30)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")

	return &Config{
		App: AppConfig{
			Name:         viper.GetString("APP_NAME"),
			Env:          viper.GetString("APP_ENV"),
			Port:         viper.GetString("APP_PORT"),
			Debug:        viper.GetBool("APP_DEBUG"),
			SeedDemoData: viper.GetBool("SEED_DEMO_DATA"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Insight: InsightConfig{
			OpenAIAPIKey: viper.GetString("OPENAI_API_KEY"),
			Model:        viper.GetString("OPENAI_MODEL"),
			Timeout:      time.Duration(viper.GetInt("INSIGHT_TIMEOUT_SECONDS")) * time.Second,
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			Address: viper.GetString("PRINTER_ADDRESS"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
	}
}
