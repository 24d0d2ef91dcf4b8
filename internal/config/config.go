// Package config loads runtime settings from the environment (and an
// optional .env file) into typed structs.
package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	HTTP      HTTP
	Database  Database
	Store     Store
	Redis     Redis
	AMQP      AMQP
	Auth      Auth
	Shop      Shop
	Assistant Assistant
	Log       Log
}

type HTTP struct {
	Addr        string
	Version     string
	Mode        string
	CORSOrigins []string
}

// Database holds the PostgreSQL connection settings.
type Database struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
	// AutoMigrate applies pending migrations when the API starts
	AutoMigrate bool
}

// ConnectionString returns DATABASE_URL, or a URL assembled from the
// individual DB_* settings.
func (d Database) ConnectionString() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

type Store struct {
	Driver string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	CartTTL  time.Duration
}

type AMQP struct {
	URL      string
	Exchange string
}

type Auth struct {
	SecretKey  string
	Expiration time.Duration
}

// Shop holds the business settings of the storefront.
type Shop struct {
	ShippingFee decimal.Decimal
	// KeepShippingOnFulfillment adds the shipping fee back to the order total
	// when it is recomputed from fulfilled quantities.
	KeepShippingOnFulfillment bool
	City                      string
	PageSize                  int
	Name                      string
}

type Assistant struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Referer string
	Support string
	Facts   []string
}

type Log struct {
	Level  string
	Format string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "momshop")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 2)
	v.SetDefault("DB_MAX_LIFETIME", 300)
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("STORE_DRIVER", "postgres")

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CART_TTL", "72h")

	v.SetDefault("AMQP_EXCHANGE", "momshop.events")

	v.SetDefault("JWT_EXPIRATION_HOURS", 24)

	v.SetDefault("SHIPPING_FEE", "1000")
	v.SetDefault("FULFILLMENT_KEEP_SHIPPING", false)
	v.SetDefault("SHOP_CITY", "Douala")
	v.SetDefault("SHOP_PAGE_SIZE", 9)
	v.SetDefault("SHOP_NAME", "MomShop")

	v.SetDefault("ASSISTANT_BASE_URL", "https://openrouter.ai/api/v1")
	v.SetDefault("ASSISTANT_MODEL", "nex-agi/deepseek-v3.1-nex-n1:free")
	v.SetDefault("ASSISTANT_TIMEOUT", "30s")
	v.SetDefault("ASSISTANT_REFERER", "http://localhost:8080")
	v.SetDefault("ASSISTANT_SUPPORT", "+237 600 000 000")
	v.SetDefault("ASSISTANT_FACTS", "Location: Makepe St. Tropez, Douala;Hours: 8 AM - 10 PM;"+
		"Payments: Cash, Orange Money, Mobile Money;Delivery: 1,000 XAF within the city")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] .env file not loaded: %v", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	fee, err := decimal.NewFromString(v.GetString("SHIPPING_FEE"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHIPPING_FEE: %w", err)
	}
	if fee.IsNegative() {
		return nil, fmt.Errorf("invalid SHIPPING_FEE: must not be negative")
	}

	pageSize := v.GetInt("SHOP_PAGE_SIZE")
	if pageSize < 1 {
		pageSize = 9
	}

	cfg := &Config{
		HTTP: HTTP{
			Addr:        v.GetString("HTTP_ADDR"),
			Version:     v.GetString("APP_VERSION"),
			Mode:        v.GetString("GIN_MODE"),
			CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: Database{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxConnections:  v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime: time.Duration(v.GetInt("DB_MAX_LIFETIME")) * time.Second,
			AutoMigrate:     v.GetBool("DB_AUTO_MIGRATE"),
		},
		Store: Store{
			Driver: strings.ToLower(v.GetString("STORE_DRIVER")),
		},
		Redis: Redis{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CartTTL:  v.GetDuration("CART_TTL"),
		},
		AMQP: AMQP{
			URL:      v.GetString("AMQP_URL"),
			Exchange: v.GetString("AMQP_EXCHANGE"),
		},
		Auth: Auth{
			SecretKey:  v.GetString("JWT_SECRET_KEY"),
			Expiration: time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,
		},
		Shop: Shop{
			ShippingFee:               fee,
			KeepShippingOnFulfillment: v.GetBool("FULFILLMENT_KEEP_SHIPPING"),
			City:                      v.GetString("SHOP_CITY"),
			PageSize:                  pageSize,
			Name:                      v.GetString("SHOP_NAME"),
		},
		Assistant: Assistant{
			APIKey:  v.GetString("DEEPSEEK_API_KEY"),
			BaseURL: strings.TrimRight(v.GetString("ASSISTANT_BASE_URL"), "/"),
			Model:   v.GetString("ASSISTANT_MODEL"),
			Timeout: v.GetDuration("ASSISTANT_TIMEOUT"),
			Referer: v.GetString("ASSISTANT_REFERER"),
			Support: v.GetString("ASSISTANT_SUPPORT"),
			Facts:   splitOn(v.GetString("ASSISTANT_FACTS"), ";"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
	return cfg, nil
}

// NewViper returns a viper instance with the environment bound and defaults set.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func splitList(s string) []string {
	return splitOn(s, ",")
}

func splitOn(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
