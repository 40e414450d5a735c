// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from config files and environment variables.
// Environment variables take precedence over file values; a .env file,
// if present, is merged into the process environment first.
func Load() (*Config, error) {
	// Best effort; production deployments set real env vars.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/formflow")

	v.SetEnvPrefix("FORMFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults plus env carry us.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment overlay, e.g. config.production.yaml.
	if env := os.Getenv("APP_ENVIRONMENT"); env != "" {
		v.SetConfigName("config." + env)
		_ = v.MergeInConfig()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "formflow")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")

	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.shutdown_timeout", 15)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database
	v.SetDefault("database.postgres.enabled", false)
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.database", "formflow")
	v.SetDefault("database.postgres.user", "formflow")
	v.SetDefault("database.postgres.max_connections", 20)
	v.SetDefault("database.postgres.max_idle", 5)
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("database.redis.enabled", false)
	v.SetDefault("database.redis.address", "localhost:6379")
	v.SetDefault("database.redis.db", 0)

	// Classifier
	v.SetDefault("classifier.enabled", false)
	v.SetDefault("classifier.api_url", "https://api.anthropic.com/v1/messages")
	v.SetDefault("classifier.model", "claude-3-haiku-20240307")
	v.SetDefault("classifier.max_tokens", 1024)
	v.SetDefault("classifier.timeout_ms", 10000)
	v.SetDefault("classifier.fallback_on_error", true)

	// Notifications
	v.SetDefault("notifications.email.enabled", false)
	v.SetDefault("notifications.email.provider", "smtp")
	v.SetDefault("notifications.email.from", "noreply@formflow.local")
	v.SetDefault("notifications.email.smtp.host", "localhost")
	v.SetDefault("notifications.email.smtp.port", 587)
	v.SetDefault("notifications.email.batch_size", 10)
	v.SetDefault("notifications.email.delay_between_batches_ms", 1000)
	v.SetDefault("notifications.sms.enabled", false)
	v.SetDefault("notifications.sms.region", "us-east-1")
	v.SetDefault("notifications.webhook.enabled", false)
	v.SetDefault("notifications.default_recipient", "")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Classifier.Enabled && cfg.Classifier.APIKey == "" {
		return fmt.Errorf("classifier is enabled but api key is not set")
	}
	if cfg.Notifications.Email.Enabled {
		switch cfg.Notifications.Email.Provider {
		case "smtp", "ses":
		default:
			return fmt.Errorf("unknown email provider: %q", cfg.Notifications.Email.Provider)
		}
	}
	return nil
}
