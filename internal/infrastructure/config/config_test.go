package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MongoDB != "flightboard" {
		t.Errorf("MongoDB = %q, want flightboard", cfg.MongoDB)
	}
	if cfg.BroadcastTimeout != 2*time.Second {
		t.Errorf("BroadcastTimeout = %v, want 2s", cfg.BroadcastTimeout)
	}
	if cfg.HubBuffer != 32 {
		t.Errorf("HubBuffer = %d, want 32", cfg.HubBuffer)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("HUB_BUFFER", "128")
	t.Setenv("NATS_URL", "nats://broker:4222")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.HubBuffer != 128 {
		t.Errorf("HubBuffer = %d, want 128", cfg.HubBuffer)
	}
	if cfg.NatsURL != "nats://broker:4222" {
		t.Errorf("NatsURL = %q", cfg.NatsURL)
	}
}
