package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the app needs at startup. Values come from
// environment variables prefixed SHOPINSIGHTS_ (e.g. SHOPINSIGHTS_API_KEY),
// optionally overridden by a config.yaml next to the binary.
type Config struct {
	ListenAddr  string
	DatabaseURL string
	RedisAddr   string

	// Platform app credentials for the OAuth handshake.
	APIKey      string
	APISecret   string
	APIVersion  string
	RedirectURI string
	Scopes      []string

	SessionSecret string

	SalesWindowDays   int
	LowStockThreshold int
	DaysOfCover       int
	LeadTimeDays      int

	SeedMockData bool
	DefaultShop  string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("shopinsights")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("redis_addr", "")
	v.SetDefault("api_version", "2024-01")
	v.SetDefault("scopes", "read_orders,read_products,read_inventory")
	v.SetDefault("sales_window_days", 60)
	v.SetDefault("low_stock_threshold", 10)
	v.SetDefault("days_of_cover", 14)
	v.SetDefault("lead_time_days", 7)
	v.SetDefault("seed_mock_data", false)
	v.SetDefault("default_shop", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		ListenAddr:        v.GetString("listen_addr"),
		DatabaseURL:       v.GetString("database_url"),
		RedisAddr:         v.GetString("redis_addr"),
		APIKey:            v.GetString("api_key"),
		APISecret:         v.GetString("api_secret"),
		APIVersion:        v.GetString("api_version"),
		RedirectURI:       v.GetString("redirect_uri"),
		Scopes:            strings.Split(v.GetString("scopes"), ","),
		SessionSecret:     v.GetString("session_secret"),
		SalesWindowDays:   v.GetInt("sales_window_days"),
		LowStockThreshold: v.GetInt("low_stock_threshold"),
		DaysOfCover:       v.GetInt("days_of_cover"),
		LeadTimeDays:      v.GetInt("lead_time_days"),
		SeedMockData:      v.GetBool("seed_mock_data"),
		DefaultShop:       v.GetString("default_shop"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("api_key and api_secret are required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url is required")
	}
	if c.RedirectURI == "" {
		return fmt.Errorf("redirect_uri is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("session_secret is required")
	}
	if c.SalesWindowDays <= 0 {
		return fmt.Errorf("sales_window_days must be positive, got %d", c.SalesWindowDays)
	}
	if c.LowStockThreshold <= 0 {
		return fmt.Errorf("low_stock_threshold must be positive, got %d", c.LowStockThreshold)
	}
	if c.DaysOfCover < 0 || c.LeadTimeDays < 0 {
		return fmt.Errorf("days_of_cover and lead_time_days cannot be negative")
	}
	return nil
}
