package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/storedesk/storedesk-cli/internal/core/domain"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
	"github.com/storedesk/storedesk-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySelectorDebounce   = "selector.debounce_ms"
	keySelectorPageSize   = "selector.page_size"
	keySelectorBreakpoint = "selector.breakpoint"
	keySelectorMaxHeight  = "selector.max_height"
	keySelectorMouse      = "selector.mouse"
	keyRemoteURL          = "remote.url"
	keyRemoteVariants     = "remote.variants"
	keyRemoteRate         = "remote.rate_per_second"
)

// SettingKeys returns every config key SettingsService understands.
func SettingKeys() []string {
	return []string{
		keySelectorDebounce,
		keySelectorPageSize,
		keySelectorBreakpoint,
		keySelectorMaxHeight,
		keySelectorMouse,
		keyRemoteURL,
		keyRemoteVariants,
		keyRemoteRate,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Selector: domain.SelectorSettings{
			DebounceMs: s.getInt(keySelectorDebounce, defaults.Selector.DebounceMs),
			PageSize:   s.getInt(keySelectorPageSize, defaults.Selector.PageSize),
			Breakpoint: s.getInt(keySelectorBreakpoint, defaults.Selector.Breakpoint),
			MaxHeight:  s.getSizeSpec(keySelectorMaxHeight, defaults.Selector.MaxHeight),
			Mouse:      s.getBool(keySelectorMouse, defaults.Selector.Mouse),
		},
		Remote: domain.RemoteSettings{
			URL:           s.configStore.GetString(keyRemoteURL), // No default - empty means local store
			Variants:      s.getVariants(defaults.Remote.Variants),
			RatePerSecond: s.getInt(keyRemoteRate, defaults.Remote.RatePerSecond),
		},
	}

	if settings.Selector.PageSize < 1 {
		settings.Selector.PageSize = defaults.Selector.PageSize
	}
	if settings.Selector.DebounceMs < 0 {
		settings.Selector.DebounceMs = defaults.Selector.DebounceMs
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Selector.Validate(); err != nil {
		return fmt.Errorf("invalid selector settings: %w", err)
	}

	// Save selector settings
	if err := s.configStore.Set(keySelectorDebounce, settings.Selector.DebounceMs); err != nil {
		return fmt.Errorf("save debounce: %w", err)
	}
	if err := s.configStore.Set(keySelectorPageSize, settings.Selector.PageSize); err != nil {
		return fmt.Errorf("save page size: %w", err)
	}
	if err := s.configStore.Set(keySelectorBreakpoint, settings.Selector.Breakpoint); err != nil {
		return fmt.Errorf("save breakpoint: %w", err)
	}
	if err := s.configStore.Set(keySelectorMaxHeight, settings.Selector.MaxHeight); err != nil {
		return fmt.Errorf("save max height: %w", err)
	}
	if err := s.configStore.Set(keySelectorMouse, settings.Selector.Mouse); err != nil {
		return fmt.Errorf("save mouse: %w", err)
	}

	// Save remote settings
	if err := s.configStore.Set(keyRemoteURL, settings.Remote.URL); err != nil {
		return fmt.Errorf("save remote url: %w", err)
	}
	if err := s.configStore.Set(keyRemoteVariants, settings.Remote.Variants); err != nil {
		return fmt.Errorf("save remote variants: %w", err)
	}
	if err := s.configStore.Set(keyRemoteRate, settings.Remote.RatePerSecond); err != nil {
		return fmt.Errorf("save remote rate: %w", err)
	}

	return nil
}

// Set updates a single setting from its string form.
//
//nolint:gocyclo // one case per key
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keySelectorDebounce, keySelectorPageSize, keySelectorBreakpoint, keyRemoteRate:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		switch key {
		case keySelectorDebounce:
			settings.Selector.DebounceMs = n
		case keySelectorPageSize:
			settings.Selector.PageSize = n
		case keySelectorBreakpoint:
			settings.Selector.Breakpoint = n
		case keyRemoteRate:
			if n < 1 {
				return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
			}
			settings.Remote.RatePerSecond = n
		}
	case keySelectorMaxHeight:
		settings.Selector.MaxHeight = value
	case keySelectorMouse:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Selector.Mouse = b
	case keyRemoteURL:
		settings.Remote.URL = strings.TrimRight(strings.TrimSpace(value), "/")
	case keyRemoteVariants:
		variants := splitList(value)
		for _, v := range variants {
			if !domain.IsValidVariant(v) {
				return fmt.Errorf("%s: unknown variant %q: %w", key, v, domain.ErrInvalidInput)
			}
		}
		if len(variants) == 0 {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		settings.Remote.Variants = variants
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Path returns where settings are persisted.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSizeSpec(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" || !domain.IsValidSizeSpec(val) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getVariants(defaultVal []string) []string {
	stored := s.configStore.GetStringSlice(keyRemoteVariants)
	if len(stored) == 0 {
		return defaultVal
	}
	variants := make([]string, 0, len(stored))
	for _, v := range stored {
		if domain.IsValidVariant(v) {
			variants = append(variants, v)
		}
	}
	if len(variants) == 0 {
		return defaultVal
	}
	return variants
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
