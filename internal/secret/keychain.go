package secret

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

const keychainService = "pions-state-store"

// KeychainStore keeps secrets in the macOS login keychain through the
// `security` CLI. On other platforms lookups miss and writes return
// ErrReadOnly.
type KeychainStore struct {
	service string
}

func NewKeychainStore() *KeychainStore {
	return &KeychainStore{service: keychainService}
}

func (k *KeychainStore) available() bool {
	return runtime.GOOS == "darwin"
}

func (k *KeychainStore) Set(key string, value []byte) error {
	if !k.available() {
		return fmt.Errorf("keychain set: unsupported on %s: %w", runtime.GOOS, ErrReadOnly)
	}
	cmd := exec.Command("security", "add-generic-password",
		"-a", key,
		"-s", k.service,
		"-w", string(value),
		"-U",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("keychain set: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

func (k *KeychainStore) Get(key string) ([]byte, error) {
	if !k.available() {
		return nil, nil
	}
	out, err := exec.Command("security", "find-generic-password",
		"-a", key,
		"-s", k.service,
		"-w",
	).Output()
	if err != nil {
		// exit code 44: item not found
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 44 {
			return nil, nil
		}
		return nil, fmt.Errorf("keychain get: %w", err)
	}
	return []byte(strings.TrimSpace(string(out))), nil
}

func (k *KeychainStore) Delete(key string) error {
	if !k.available() {
		return fmt.Errorf("keychain delete: unsupported on %s: %w", runtime.GOOS, ErrReadOnly)
	}
	// missing items are fine
	_ = exec.Command("security", "delete-generic-password", "-a", key, "-s", k.service).Run()
	return nil
}
