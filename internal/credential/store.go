// Package credential stores the search API access key. The OS keyring is the
// primary backend; headless machines without one fall back to a file under
// the user config directory. The key is never baked into the binary.
package credential

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService namespaces our entry in the OS keyring.
	KeyringService = "pricefinder"
	keyName        = "serpstack_access_key"

	// EnvAccessKey overrides any stored key when set.
	EnvAccessKey = "SERPSTACK_ACCESS_KEY"
)

// ErrNotFound is returned when no access key is stored anywhere.
var ErrNotFound = errors.New("no access key configured")

// Save stores the access key, preferring the OS keyring.
func Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("access key must not be empty")
	}

	if err := keyring.Set(KeyringService, keyName, key); err == nil {
		return nil
	}

	path, err := fallbackPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(key), 0600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// Load resolves the access key: environment first, then keyring, then the
// file fallback. Returns ErrNotFound if none of them has one.
func Load() (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAccessKey)); key != "" {
		return key, nil
	}

	if key, err := keyring.Get(KeyringService, keyName); err == nil && key != "" {
		return key, nil
	}

	path, err := fallbackPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ErrNotFound
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", ErrNotFound
	}
	return key, nil
}

// Delete removes the stored key from every backend it might live in.
func Delete() error {
	kerr := keyring.Delete(KeyringService, keyName)
	if errors.Is(kerr, keyring.ErrNotFound) {
		kerr = nil
	}

	path, err := fallbackPath()
	if err != nil {
		return err
	}
	ferr := os.Remove(path)
	if os.IsNotExist(ferr) {
		ferr = nil
	}

	if kerr != nil {
		return kerr
	}
	return ferr
}

// Mask renders a key safe for terminal output, keeping only a short suffix.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

func fallbackPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, KeyringService, "access_key"), nil
}
