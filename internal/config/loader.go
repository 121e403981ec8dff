package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables the deployment sets.
var envBindings = map[string]string{
	"database.url":              "DATABASE_URL",
	"database.migrate_on_start": "DATABASE_MIGRATE_ON_START",
	"razorpay.key_secret":       "RAZORPAY_KEY_SECRET",
	"razorpay.webhook_secret":   "RAZORPAY_WEBHOOK_SECRET",
	"redis.addr":                "REDIS_ADDR",
	"redis.password":            "REDIS_PASSWORD",
	"http.addr":                 "HTTP_ADDR",
	"http.rate_limit":           "HTTP_RATE_LIMIT",
	"http.rate_burst":           "HTTP_RATE_BURST",
	"http.trust_proxy":          "HTTP_TRUST_PROXY",
	"admin.jwt_secret":          "ADMIN_JWT_SECRET",
	"notify.driver":             "NOTIFY_DRIVER",
	"notify.email_api_url":      "EMAIL_API_URL",
	"notify.email_api_key":      "EMAIL_API_KEY",
	"notify.email_from":         "EMAIL_FROM",
	"notify.kafka_brokers":      "KAFKA_BROKERS",
	"notify.kafka_topic":        "KAFKA_TOPIC",
	"log.level":                 "LOG_LEVEL",
	"log.format":                "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.shutdown_timeout", 20*time.Second)
	v.SetDefault("http.rate_limit", 5.0)
	v.SetDefault("http.rate_burst", 10)
	v.SetDefault("http.trust_proxy", false)

	v.SetDefault("database.url", "")
	v.SetDefault("database.migrate_on_start", false)

	v.SetDefault("razorpay.key_secret", "")
	v.SetDefault("razorpay.webhook_secret", "")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.event_ttl", 24*time.Hour)

	v.SetDefault("admin.jwt_secret", "")

	v.SetDefault("notify.driver", NotifyDriverLog)
	v.SetDefault("notify.workers", 2)
	v.SetDefault("notify.queue_size", 100)
	v.SetDefault("notify.email_api_url", "https://api.resend.com")
	v.SetDefault("notify.email_api_key", "")
	v.SetDefault("notify.email_from", "")
	v.SetDefault("notify.kafka_brokers", []string{})
	v.SetDefault("notify.kafka_topic", "order-notifications")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads defaults, then the optional YAML file at path, then the
// environment. Later sources win.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("v.ReadInConfig[%s]: %w", path, err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("v.BindEnv[%s]: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}

	return &cfg, nil
}
