package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("port %q", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Fatalf("backend %q", cfg.DataBackend)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("REPORT_CACHE_TTL", "30s")
	t.Setenv("LARGE_PAYMENT_USD", "750")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DataBackend != "memory" {
		t.Fatalf("overrides lost: %+v", cfg)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("ttl %v", cfg.CacheTTL)
	}
	if cfg.LargePaymentUSD.String() != "750" {
		t.Fatalf("large payment %s", cfg.LargePaymentUSD)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		problem string
	}{
		{"bad port", func(c *Config) { c.Port = "nope" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port"},
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"sqlite without path", func(c *Config) { c.SQLiteDBPath = "" }, "SQLITE_DB_PATH"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://localhost" }, "AMQP URL scheme"},
		{"amqp without queue", func(c *Config) { c.AMQPQueue = "" }, "AMQP_QUEUE"},
		{"zero cache", func(c *Config) { c.CacheSize = 0 }, "cache size"},
	}
	for _, tc := range cases {
		cfg := Load()
		tc.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.problem) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.problem)
		}
	}
}

func TestThresholdsUseConfiguredCutoffs(t *testing.T) {
	t.Setenv("LARGE_PAYMENT_VND", "9000000")
	cfg := Load()
	th := cfg.Thresholds()
	if th.LargePayment["VND"].String() != "9000000" {
		t.Fatalf("threshold %s", th.LargePayment["VND"])
	}
}
