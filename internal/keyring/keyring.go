// Package keyring stores the PostgreSQL connection string in the OS
// credential store so it never has to live in a flag or dotfile.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/lectern/internal/constants"
)

var (
	ErrNotFound    = errors.New("credentials not found in keyring")
	ErrUnavailable = errors.New("OS keyring is not available")
)

// Entry addresses one secret by service and account name.
type Entry struct {
	Service string
	User    string
}

// Default is the entry holding the database connection string.
func Default() Entry {
	return Entry{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

func (e Entry) Get() (string, error) {
	secret, err := gokeyring.Get(e.Service, e.User)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return secret, nil
}

func (e Entry) Set(secret string) error {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(e.Service, e.User, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (e Entry) Delete() error {
	err := gokeyring.Delete(e.Service, e.User)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// Available probes the keyring with a read; a not-found answer still means
// the backend is reachable.
func Available() bool {
	_, err := gokeyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}

// ConnectionString reads the default entry.
func ConnectionString() (string, error) {
	return Default().Get()
}
