package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
)

// MQTTConfig describes the broker that receives schedule change events.
// An empty Broker disables publishing.
type MQTTConfig struct {
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
	Username    string `yaml:"username,omitempty"`
}

// RedisConfig is used when the store is a redis:// address.
type RedisConfig struct {
	Addr string `yaml:"addr,omitempty"`
	DB   int    `yaml:"db"`
	Key  string `yaml:"key"`
}

// Config is the top-level application configuration.
type Config struct {
	// Store is a file path (SQLite, or JSON when it ends in .json), a
	// postgres:// or redis:// URL, or "keyring".
	Store  string      `yaml:"store"`
	LogDir string      `yaml:"log_dir"`
	Debug  bool        `yaml:"debug"`
	MQTT   MQTTConfig  `yaml:"mqtt"`
	Redis  RedisConfig `yaml:"redis"`
}

// Dir is the default configuration directory, ~/.config/zonealarm.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, constants.AppName)
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	dir := Dir()
	return &Config{
		Store:  filepath.Join(dir, constants.AppName+".db"),
		LogDir: filepath.Join(dir, "logs"),
		MQTT: MQTTConfig{
			ClientID:    constants.AppName,
			TopicPrefix: constants.DefaultTopicPrefix,
		},
		Redis: RedisConfig{Key: constants.DefaultRedisKey},
	}
}

// Normalize fills in missing values so partially written files still work.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Store == "" {
		c.Store = def.Store
	}
	c.Store = ExpandHome(c.Store)
	if c.LogDir == "" {
		c.LogDir = def.LogDir
	}
	c.LogDir = ExpandHome(c.LogDir)
	if c.MQTT.ClientID == "" {
		c.MQTT.ClientID = def.MQTT.ClientID
	}
	c.MQTT.TopicPrefix = strings.TrimRight(c.MQTT.TopicPrefix, "/")
	if c.MQTT.TopicPrefix == "" {
		c.MQTT.TopicPrefix = def.MQTT.TopicPrefix
	}
	if c.Redis.Key == "" {
		c.Redis.Key = def.Redis.Key
	}
	if c.Redis.DB < 0 {
		c.Redis.DB = 0
	}
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Load reads the YAML file at path. A missing file yields the defaults and
// is not created; Save writes one explicitly.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg as YAML with 0600 permissions, creating parent directories.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	path = ExpandHome(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
