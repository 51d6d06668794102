// Package keyring keeps the PostgreSQL connection string in the OS keyring.
package keyring

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/habitstack/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string is stored
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Credentials addresses one secret in the OS keyring
type Credentials struct {
	Service string
	Account string
}

// Default returns the habitstack database entry.
func Default() Credentials {
	return Credentials{Service: constants.AppName, Account: constants.DefaultKeyringUser}
}

// Get returns the stored connection string.
func (c Credentials) Get() (string, error) {
	connStr, err := keyring.Get(c.Service, c.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// Set stores connStr, replacing any previous value.
func (c Credentials) Set(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(c.Service, c.Account, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// Delete removes the stored connection string.
func (c Credentials) Delete() error {
	err := keyring.Delete(c.Service, c.Account)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available reports whether the keyring answers a lookup. It is best effort.
func (c Credentials) Available() bool {
	_, err := keyring.Get(c.Service, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Redact hides the user and password of a URL connection string for display.
// Key/value DSNs are returned unchanged.
func Redact(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.Scheme == "" || u.User == nil {
		return connStr
	}
	u.User = url.User("redacted")
	return u.String()
}
