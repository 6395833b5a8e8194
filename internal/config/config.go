package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	AppName     string
	LogLevel    string
	Server      ServerConfig
}

// ServerConfig holds local development server configuration.
type ServerConfig struct {
	Port           string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load loads configuration from environment variables and an optional
// .env file.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("APP_NAME", "lambda-router")
	viper.SetDefault("LOG_LEVEL", "error")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("RATE_LIMIT_RPS", 25.0)
	viper.SetDefault("RATE_LIMIT_BURST", 50)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		AppName:     viper.GetString("APP_NAME"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Server: ServerConfig{
			Port:           viper.GetString("PORT"),
			RateLimitRPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// TokenProvider returns the access-token source for the dispatcher's
// token gate. The secret is looked up on every call so rotating the
// TOKEN environment variable takes effect without a restart.
func TokenProvider() func() string {
	return func() string {
		return viper.GetString("TOKEN")
	}
}

// RunningInLambda detects whether the process is hosted by AWS Lambda.
func RunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}
