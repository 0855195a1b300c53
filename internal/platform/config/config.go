package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the callback gateway.
type Config struct {
	ServerPort int    `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	NATSUrl           string `mapstructure:"NATS_URL"`
	NATSSubjectPrefix string `mapstructure:"NATS_SUBJECT_PREFIX"`

	// PostgresDSN is only used when the callback event ledger is enabled.
	PostgresDSN   string `mapstructure:"POSTGRES_DSN"`
	LedgerEnabled bool   `mapstructure:"LEDGER_ENABLED"`

	// PaymentSecureToken is compared against the beem-secure-token header on
	// payment callbacks. Empty disables the check.
	PaymentSecureToken string `mapstructure:"PAYMENT_SECURE_TOKEN"`

	// UssdDefaultReply overrides the terminate text used when no business
	// handler produces a reply. Empty keeps the built-in default.
	UssdDefaultReply string `mapstructure:"USSD_DEFAULT_REPLY"`
}

func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP") // APP_SERVER_PORT, APP_NATS_URL etc.

	v.SetDefault("SERVER_PORT", 8085)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("NATS_SUBJECT_PREFIX", "callbacks")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("LEDGER_ENABLED", false)
	v.SetDefault("PAYMENT_SECURE_TOKEN", "")
	v.SetDefault("USSD_DEFAULT_REPLY", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Configuration file not found for %s; using defaults and environment variables.", serviceName)
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
