package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

// schemaNamePattern allow-lists database schema names. The schema name
// cannot be a bind parameter, it ends up interpolated into table names,
// so anything outside this pattern is rejected at startup.
var schemaNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Payment holds the payment-provider credentials and contract knobs.
// Enabled reports whether the optional payment step should run at all.
type Payment struct {
	BaseURL   string
	ShopID    string
	SecretKey string
	Currency  string
	ReturnURL string
	Timeout   time.Duration
}

// Enabled reports whether payment credentials are configured.
func (p Payment) Enabled() bool {
	return p.ShopID != "" && p.SecretKey != ""
}

// Config is the process configuration, read once at startup and
// injected explicitly instead of consulting the environment per request.
type Config struct {
	AppPort     string
	DatabaseDSN string
	DBSchema    string
	RabbitMQURL string
	Payment     Payment
}

// Load reads configuration from the environment with sane defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=cybershop port=5432 sslmode=disable")
	v.SetDefault("MAIN_DB_SCHEMA", "public")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("YOOKASSA_BASE_URL", "https://api.yookassa.ru/v3")
	v.SetDefault("YOOKASSA_SHOP_ID", "")
	v.SetDefault("YOOKASSA_SECRET_KEY", "")
	v.SetDefault("PAYMENT_CURRENCY", "RUB")
	v.SetDefault("PAYMENT_RETURN_URL", "https://functions.poehali.dev/success")
	v.SetDefault("PAYMENT_TIMEOUT", "10s")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:     v.GetString("APP_PORT"),
		DatabaseDSN: v.GetString("DATABASE_URL"),
		DBSchema:    v.GetString("MAIN_DB_SCHEMA"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		Payment: Payment{
			BaseURL:   v.GetString("YOOKASSA_BASE_URL"),
			ShopID:    v.GetString("YOOKASSA_SHOP_ID"),
			SecretKey: v.GetString("YOOKASSA_SECRET_KEY"),
			Currency:  v.GetString("PAYMENT_CURRENCY"),
			ReturnURL: v.GetString("PAYMENT_RETURN_URL"),
			Timeout:   v.GetDuration("PAYMENT_TIMEOUT"),
		},
	}

	if !schemaNamePattern.MatchString(cfg.DBSchema) {
		return nil, fmt.Errorf("invalid database schema name %q", cfg.DBSchema)
	}
	return cfg, nil
}
