package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MQTT.TopicPrefix != constants.DefaultTopicPrefix {
		t.Errorf("expected default topic prefix, got %q", cfg.MQTT.TopicPrefix)
	}
	if cfg.Redis.Key != constants.DefaultRedisKey {
		t.Errorf("expected default redis key, got %q", cfg.Redis.Key)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Load should not create the config file")
	}
}

func TestLoadPartialFileIsNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "store: /var/lib/zonealarm/zones.json\nmqtt:\n  broker: tcp://broker:1883\n  topic_prefix: site/alarm/\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Store != "/var/lib/zonealarm/zones.json" {
		t.Errorf("unexpected store %q", cfg.Store)
	}
	if cfg.MQTT.Broker != "tcp://broker:1883" {
		t.Errorf("unexpected broker %q", cfg.MQTT.Broker)
	}
	if cfg.MQTT.TopicPrefix != "site/alarm" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.MQTT.TopicPrefix)
	}
	if cfg.MQTT.ClientID != constants.AppName {
		t.Errorf("expected default client id, got %q", cfg.MQTT.ClientID)
	}
	if cfg.LogDir == "" {
		t.Error("expected log dir to be defaulted")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: [unterminated"), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Store = "redis://localhost:6379/0"
	cfg.Debug = true
	cfg.Redis.DB = 2

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected 0600 permissions, got %o", perm)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Store != cfg.Store || !loaded.Debug || loaded.Redis.DB != 2 {
		t.Errorf("config did not survive the round trip: %+v", loaded)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"~/zones.db", filepath.Join(home, "zones.db")},
		{"/tmp/zones.db", "/tmp/zones.db"},
		{"postgres://db/zones", "postgres://db/zones"},
		{"~other/zones.db", "~other/zones.db"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ExpandHome(tt.in); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
