package secret

import (
	"errors"
	"os"
	"strings"
)

// ErrReadOnly is returned by stores that cannot be written.
var ErrReadOnly = errors.New("secret store is read-only")

// SecretStore looks up sensitive values such as the remote state-store
// password. Get returns an empty slice and nil error for unknown keys.
type SecretStore interface {
	Set(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
}

// EnvStore reads secrets from PIONS_SECRET_<KEY> environment variables.
// It is read-only.
type EnvStore struct{}

func (EnvStore) envName(key string) string {
	k := strings.ToUpper(strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(key))
	return "PIONS_SECRET_" + k
}

func (e EnvStore) Get(key string) ([]byte, error) {
	return []byte(os.Getenv(e.envName(key))), nil
}

func (EnvStore) Set(string, []byte) error { return ErrReadOnly }
func (EnvStore) Delete(string) error      { return ErrReadOnly }

// Chain returns the first non-empty value from its stores. Writes go to
// every writable store; ErrReadOnly is returned when none accepted them.
type Chain []SecretStore

func (c Chain) Get(key string) ([]byte, error) {
	for _, s := range c {
		v, err := s.Get(key)
		if err != nil {
			return nil, err
		}
		if len(v) > 0 {
			return v, nil
		}
	}
	return nil, nil
}

func (c Chain) Set(key string, value []byte) error {
	return c.write(func(s SecretStore) error { return s.Set(key, value) })
}

func (c Chain) Delete(key string) error {
	return c.write(func(s SecretStore) error { return s.Delete(key) })
}

func (c Chain) write(fn func(SecretStore) error) error {
	wrote := false
	for _, s := range c {
		err := fn(s)
		if errors.Is(err, ErrReadOnly) {
			continue
		}
		if err != nil {
			return err
		}
		wrote = true
	}
	if !wrote {
		return ErrReadOnly
	}
	return nil
}

// Default is the environment first, then the macOS keychain.
func Default() SecretStore {
	return Chain{EnvStore{}, NewKeychainStore()}
}
