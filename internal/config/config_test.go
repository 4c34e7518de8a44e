package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cybershop/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "public", cfg.DBSchema)
	assert.Equal(t, "RUB", cfg.Payment.Currency)
	assert.Equal(t, 10*time.Second, cfg.Payment.Timeout)
	assert.False(t, cfg.Payment.Enabled())
}

func TestLoad_PaymentEnabledWhenCredentialsSet(t *testing.T) {
	t.Setenv("YOOKASSA_SHOP_ID", "shop-1")
	t.Setenv("YOOKASSA_SECRET_KEY", "secret")

	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.True(t, cfg.Payment.Enabled())
}

func TestLoad_RejectsInvalidSchemaName(t *testing.T) {
	for _, schema := range []string{"bad-name", "public; DROP TABLE orders", "1st"} {
		t.Setenv("MAIN_DB_SCHEMA", schema)
		cfg, err := config.Load()
		assert.Error(t, err, "schema %q should be rejected", schema)
		assert.Nil(t, cfg)
	}
}

func TestLoad_AcceptsValidSchemaName(t *testing.T) {
	t.Setenv("MAIN_DB_SCHEMA", "shop_prod")
	cfg, err := config.Load()
	assert.NoError(t, err)
	assert.Equal(t, "shop_prod", cfg.DBSchema)
}
