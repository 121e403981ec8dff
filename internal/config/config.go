package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	NotifyDriverLog   = "log"
	NotifyDriverEmail = "email"
	NotifyDriverKafka = "kafka"
)

// Config is the full service configuration
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" mapstructure:"http"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Razorpay RazorpayConfig `yaml:"razorpay" mapstructure:"razorpay"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
	Admin    AdminConfig    `yaml:"admin" mapstructure:"admin"`
	Notify   NotifyConfig   `yaml:"notify" mapstructure:"notify"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr" mapstructure:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`

	// Per client IP limit on the payment verification route
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`

	// TrustProxy reads the client IP from forwarding headers.
	TrustProxy bool `yaml:"trust_proxy" mapstructure:"trust_proxy"`
}

type DatabaseConfig struct {
	// URL must carry the service role credentials
	URL            string `yaml:"url" mapstructure:"url"`
	MigrateOnStart bool   `yaml:"migrate_on_start" mapstructure:"migrate_on_start"`
}

// RazorpayConfig secrets may be empty at startup; requests that need them fail.
type RazorpayConfig struct {
	KeySecret     string `yaml:"key_secret" mapstructure:"key_secret"`
	WebhookSecret string `yaml:"webhook_secret" mapstructure:"webhook_secret"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" mapstructure:"addr"`
	Password string        `yaml:"password" mapstructure:"password"`
	DB       int           `yaml:"db" mapstructure:"db"`
	EventTTL time.Duration `yaml:"event_ttl" mapstructure:"event_ttl"`
}

type AdminConfig struct {
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type NotifyConfig struct {
	Driver    string `yaml:"driver" mapstructure:"driver"`
	Workers   int    `yaml:"workers" mapstructure:"workers"`
	QueueSize int    `yaml:"queue_size" mapstructure:"queue_size"`

	EmailAPIURL string `yaml:"email_api_url" mapstructure:"email_api_url"`
	EmailAPIKey string `yaml:"email_api_key" mapstructure:"email_api_key"`
	EmailFrom   string `yaml:"email_from" mapstructure:"email_from"`

	KafkaBrokers []string `yaml:"kafka_brokers" mapstructure:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic" mapstructure:"kafka_topic"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

func (c *Config) Validate() error {
	var errs []error

	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url (DATABASE_URL) is required"))
	}

	if c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is empty"))
	}

	switch c.Notify.Driver {
	case NotifyDriverLog:
	case NotifyDriverEmail:
		if c.Notify.EmailAPIKey == "" || c.Notify.EmailFrom == "" {
			errs = append(errs, errors.New("notify.email_api_key and notify.email_from are required for the email driver"))
		}
	case NotifyDriverKafka:
		if len(c.Notify.KafkaBrokers) == 0 {
			errs = append(errs, errors.New("notify.kafka_brokers is required for the kafka driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown notify driver %q", c.Notify.Driver))
	}

	return errors.Join(errs...)
}
