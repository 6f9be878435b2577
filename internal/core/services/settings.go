package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/membridge/internal/core/domain"
	"github.com/custodia-labs/membridge/internal/core/ports/driven"
	"github.com/custodia-labs/membridge/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyArchiveRoot  = "archive.root"
	KeySearchLimit  = "search.limit"
	KeyServerAddr   = "server.addr"
	KeyWatchEnabled = "watch.enabled"
)

// SettingsService reads and writes settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the configured settings. Missing or invalid values fall
// back to the defaults.
func (s *SettingsService) Get() domain.Settings {
	settings := domain.DefaultSettings()
	if s.configStore == nil {
		return settings
	}

	if root := strings.TrimSpace(s.configStore.GetString(KeyArchiveRoot)); root != "" {
		settings.ArchiveRoot = root
	}
	if limit := s.configStore.GetInt(KeySearchLimit); limit > 0 {
		settings.SearchLimit = limit
	}
	if addr := strings.TrimSpace(s.configStore.GetString(KeyServerAddr)); addr != "" {
		settings.ServerAddr = addr
	}
	if v, ok := s.configStore.Get(KeyWatchEnabled); ok {
		if b, isBool := v.(bool); isBool {
			settings.Watch = b
		}
	}
	return settings
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return fmt.Errorf("%w: no config store", domain.ErrInvalidInput)
	}

	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyArchiveRoot, KeySearchLimit, KeyServerAddr, KeyWatchEnabled}
}

// ConfigPath returns the config file path, or "" without a store.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func parseSetting(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyArchiveRoot, KeyServerAddr:
		if value == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, key)
		}
		return value, nil
	case KeySearchLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case KeyWatchEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}
