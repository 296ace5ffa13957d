package redis

import (
	"fmt"
	"os"
	"testing"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/storage/storagetest"
)

// TestStore_Integration runs against a real server.
// Example: REDIS_TEST_ADDR="localhost:6379"
func TestStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set, skipping Redis integration test")
	}

	key := fmt.Sprintf("zonealarm:test:%d", time.Now().UnixNano())
	store := New(&goredis.Options{Addr: addr}, key)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	defer store.Close()

	storagetest.Run(t, store, "lobby")
}

func TestNewFromURL(t *testing.T) {
	store, err := NewFromURL("redis://localhost:6379/2", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	if store.key != "zonealarm:zones" {
		t.Errorf("expected default key, got %q", store.key)
	}
	if got := store.GetConfigPath(); got != "redis://localhost:6379/zonealarm:zones" {
		t.Errorf("unexpected config path %q", got)
	}

	if _, err := NewFromURL("http://localhost", "", ""); err == nil {
		t.Error("expected error for non-redis URL")
	}
}

func TestNewFromURL_Password(t *testing.T) {
	tests := []struct {
		name, url, fallback, want string
	}{
		{"fallback used", "redis://localhost:6379/0", "from-keyring", "from-keyring"},
		{"url password wins", "redis://:inline@localhost:6379/0", "from-keyring", "inline"},
		{"no password", "redis://localhost:6379/0", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewFromURL(tt.url, "", tt.fallback)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer store.Close()
			if got := store.client.Options().Password; got != tt.want {
				t.Errorf("expected password %q, got %q", tt.want, got)
			}
		})
	}
}
