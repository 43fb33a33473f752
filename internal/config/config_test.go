package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WELLED_ENV", "development")
	t.Setenv("WELLED_DEV_SECRET", "")
	t.Setenv("WELLED_API_URL", "http://localhost:5000/api")
	t.Setenv("WELLED_REQUEST_TIMEOUT", "15s")
	t.Setenv("WELLED_BANNER_DURATION", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("IsDevelopment=false, want true")
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout=%v, want 15s", cfg.RequestTimeout)
	}
	if cfg.BannerDuration != 3*time.Second {
		t.Fatalf("BannerDuration=%v, want 3s", cfg.BannerDuration)
	}
	if cfg.Dev.Secret == "" {
		t.Fatalf("dev secret not defaulted")
	}
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("WELLED_ENV", "production")
	t.Setenv("WELLED_DEV_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("Load succeeded without a secret in production")
	}
}

func TestLoadRejectsZeroTimeout(t *testing.T) {
	t.Setenv("WELLED_ENV", "development")
	t.Setenv("WELLED_REQUEST_TIMEOUT", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("Load accepted a zero timeout")
	}
}
