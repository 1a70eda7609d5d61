package config

import "testing"

func validConfig() *Config {
	return &Config{
		ListenAddr:        ":8080",
		DatabaseURL:       "postgres://localhost/insights",
		APIKey:            "key",
		APISecret:         "secret",
		APIVersion:        "2024-01",
		RedirectURI:       "https://app.example.com/auth/callback",
		Scopes:            []string{"read_orders"},
		SessionSecret:     "session-secret",
		SalesWindowDays:   60,
		LowStockThreshold: 10,
		DaysOfCover:       14,
		LeadTimeDays:      7,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHOPINSIGHTS_API_KEY", "key")
	t.Setenv("SHOPINSIGHTS_API_SECRET", "secret")
	t.Setenv("SHOPINSIGHTS_DATABASE_URL", "postgres://localhost/insights")
	t.Setenv("SHOPINSIGHTS_REDIRECT_URI", "https://app.example.com/auth/callback")
	t.Setenv("SHOPINSIGHTS_SESSION_SECRET", "session-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.SalesWindowDays != 60 {
		t.Errorf("expected default window 60, got %d", cfg.SalesWindowDays)
	}
	if cfg.LowStockThreshold != 10 {
		t.Errorf("expected default threshold 10, got %d", cfg.LowStockThreshold)
	}
	if len(cfg.Scopes) != 3 {
		t.Errorf("expected three default scopes, got %v", cfg.Scopes)
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("SHOPINSIGHTS_DATABASE_URL", "postgres://localhost/insights")

	if _, err := Load(); err == nil {
		t.Errorf("expected error without api credentials")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing api key", func(c *Config) { c.APIKey = "" }, true},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }, true},
		{"missing redirect uri", func(c *Config) { c.RedirectURI = "" }, true},
		{"missing session secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"non-positive window", func(c *Config) { c.SalesWindowDays = 0 }, true},
		{"non-positive threshold", func(c *Config) { c.LowStockThreshold = -1 }, true},
		{"negative lead time", func(c *Config) { c.LeadTimeDays = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
