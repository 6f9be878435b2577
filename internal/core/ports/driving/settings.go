package driving

import "github.com/custodia-labs/membridge/internal/core/domain"

// SettingsService manages persisted configuration.
type SettingsService interface {
	// Get returns configured settings with defaults filled in.
	Get() domain.Settings

	// Set parses and persists a single setting by key.
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string

	// ConfigPath returns where settings are stored.
	ConfigPath() string
}
