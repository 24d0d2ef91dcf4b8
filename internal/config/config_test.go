package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "1000", cfg.Shop.ShippingFee.String())
	assert.False(t, cfg.Shop.KeepShippingOnFulfillment)
	assert.Equal(t, "Douala", cfg.Shop.City)
	assert.Equal(t, 9, cfg.Shop.PageSize)
	assert.Equal(t, 72*time.Hour, cfg.Redis.CartTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.Expiration)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "nex-agi/deepseek-v3.1-nex-n1:free", cfg.Assistant.Model)
	assert.Len(t, cfg.Assistant.Facts, 4)
	assert.Equal(t, "Hours: 8 AM - 10 PM", cfg.Assistant.Facts[1])
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SHIPPING_FEE", "750.50")
	v.Set("FULFILLMENT_KEEP_SHIPPING", true)
	v.Set("CORS_ORIGINS", "https://a.cm, https://b.cm")
	v.Set("STORE_DRIVER", "MEMORY")
	v.Set("ASSISTANT_BASE_URL", "http://llm.local/v1/")

	cfg, err := FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "750.5", cfg.Shop.ShippingFee.String())
	assert.True(t, cfg.Shop.KeepShippingOnFulfillment)
	assert.Equal(t, []string{"https://a.cm", "https://b.cm"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "http://llm.local/v1", cfg.Assistant.BaseURL)
}

func TestFromViper_InvalidShippingFee(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("SHIPPING_FEE", "free")

	_, err := FromViper(v)
	assert.Error(t, err)
}

func TestDatabase_ConnectionString(t *testing.T) {
	d := Database{Host: "db", Port: 5433, User: "shop", Password: "p@ss", Name: "momshop", SSLMode: "disable"}
	assert.Equal(t, "postgres://shop:p%40ss@db:5433/momshop?sslmode=disable", d.ConnectionString())

	d.URL = "postgres://x/y"
	assert.Equal(t, "postgres://x/y", d.ConnectionString())
}
