package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/Johnnysharkhead/axis-ai-agent-event-analysis-sub000/internal/constants"
)

// Secret names a credential stored under the application's keyring service.
type Secret string

const (
	PostgresConnString Secret = "postgres-connection"
	RedisPassword      Secret = "redis-password"
	MQTTPassword       Secret = "mqtt-password"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	ErrUnknownSecret      = errors.New("unknown secret")
)

// ParseSecret accepts the secret names used on the command line.
func ParseSecret(name string) (Secret, error) {
	switch s := Secret(name); s {
	case PostgresConnString, RedisPassword, MQTTPassword:
		return s, nil
	default:
		return "", fmt.Errorf("%w %q (expected %s, %s or %s)", ErrUnknownSecret, name, PostgresConnString, RedisPassword, MQTTPassword)
	}
}

// Get retrieves a secret. Returns ErrNotFound if nothing is stored.
func Get(s Secret) (string, error) {
	value, err := keyring.Get(constants.AppName, string(s))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func Set(s Secret, value string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", s)
	}
	if err := keyring.Set(constants.AppName, string(s), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", s, err)
	}
	return nil
}

func Delete(s Secret) error {
	if err := keyring.Delete(constants.AppName, string(s)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", s, err)
	}
	return nil
}

// Lookup returns the stored secret, or "" when none is stored. Other keyring
// failures are returned.
func Lookup(s Secret) (string, error) {
	value, err := Get(s)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return value, err
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
