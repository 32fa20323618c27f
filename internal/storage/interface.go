package storage

import (
	"errors"

	"github.com/julianstephens/lectern/internal/models"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted.
var ErrNotFound = errors.New("key not found")

// Provider is the key-value persistence behind the single user profile and
// the stored settings.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Key-value
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error

	// Utils
	GetConfigPath() string
}
