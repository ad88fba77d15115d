package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/custodia-labs/contentsearch/internal/core/domain"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driven"
	"github.com/custodia-labs/contentsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyIndexBackend      = "index.backend"
	KeySearchMaxResults  = "search.max_results"
	KeySearchCacheSize   = "search.cache_size"
	KeySyncHistoryLimit  = "sync.history_limit"
	KeyRefreshInterval   = "refresh.interval"
	KeyRefreshRatePerMin = "refresh.rate_per_minute"
	KeyWatchSeedFile     = "watch.seed_file"
)

var settingKeys = []string{
	KeyIndexBackend,
	KeySearchMaxResults,
	KeySearchCacheSize,
	KeySyncHistoryLimit,
	KeyRefreshInterval,
	KeyRefreshRatePerMin,
	KeyWatchSeedFile,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing keys take defaults.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()

	if v := s.configStore.GetString(KeyIndexBackend); v != "" {
		settings.Index.Backend = domain.IndexBackend(v)
	}
	settings.Search.MaxResults = s.getInt(KeySearchMaxResults, settings.Search.MaxResults)
	settings.Search.CacheSize = s.getInt(KeySearchCacheSize, settings.Search.CacheSize)
	settings.Sync.HistoryLimit = s.getInt(KeySyncHistoryLimit, settings.Sync.HistoryLimit)
	minutes := s.getInt(KeyRefreshInterval, int(settings.Refresh.Interval/time.Minute))
	settings.Refresh.Interval = time.Duration(minutes) * time.Minute
	settings.Refresh.RatePerMinute = s.getInt(KeyRefreshRatePerMin, settings.Refresh.RatePerMinute)
	settings.Watch.SeedFile = s.configStore.GetString(KeyWatchSeedFile)

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid configuration in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save validates and persists settings.
func (s *SettingsService) Save(settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		KeyIndexBackend:      string(settings.Index.Backend),
		KeySearchMaxResults:  settings.Search.MaxResults,
		KeySearchCacheSize:   settings.Search.CacheSize,
		KeySyncHistoryLimit:  settings.Sync.HistoryLimit,
		KeyRefreshInterval:   int(settings.Refresh.Interval / time.Minute),
		KeyRefreshRatePerMin: settings.Refresh.RatePerMinute,
	}
	for key, value := range values {
		if err := s.configStore.Set(key, value); err != nil {
			return err
		}
	}
	if settings.Watch.SeedFile != "" {
		if err := s.configStore.Set(KeyWatchSeedFile, settings.Watch.SeedFile); err != nil {
			return err
		}
	} else if err := s.configStore.Delete(KeyWatchSeedFile); err != nil {
		return err
	}

	return s.configStore.Save()
}

// Set parses a single key and persists it if the resulting settings are valid.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		// Allow fixing a bad value in place.
		settings = domain.DefaultSettings()
	}

	switch key {
	case KeyIndexBackend:
		settings.Index.Backend = domain.IndexBackend(value)
	case KeySearchMaxResults:
		settings.Search.MaxResults, err = parseInt(key, value)
	case KeySearchCacheSize:
		settings.Search.CacheSize, err = parseInt(key, value)
	case KeySyncHistoryLimit:
		settings.Sync.HistoryLimit, err = parseInt(key, value)
	case KeyRefreshInterval:
		var minutes int
		minutes, err = parseInt(key, value)
		settings.Refresh.Interval = time.Duration(minutes) * time.Minute
	case KeyRefreshRatePerMin:
		settings.Refresh.RatePerMinute, err = parseInt(key, value)
	case KeyWatchSeedFile:
		settings.Watch.SeedFile = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
	}
	return n, nil
}
