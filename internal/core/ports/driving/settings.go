package driving

import "github.com/custodia-labs/contentsearch/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults per key.
	Get() (domain.Settings, error)

	// Save validates and persists settings.
	Save(settings domain.Settings) error

	// Set parses and stores a single key, then persists.
	Set(key, value string) error

	// Keys returns the recognised setting keys.
	Keys() []string
}
