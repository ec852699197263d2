package memory

import (
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/storedesk/storedesk-cli/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore holds settings such as "selector.page_size" or
// "remote.variants" in memory. It backs --ephemeral runs, where the user's
// config.toml must stay untouched, and service tests.
//
// Values set from the command line arrive as strings, so the typed getters
// parse them the way the TOML store's decoded values would read.
type ConfigStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewConfigStore returns a store preloaded with the given settings maps.
// Later maps win on duplicate keys.
func NewConfigStore(seed ...map[string]any) *ConfigStore {
	s := &ConfigStore{values: make(map[string]any)}
	for _, m := range seed {
		maps.Copy(s.values, m)
	}
	return s
}

func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString returns "" for non-string values, so a page size never reads
// back as a remote URL.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt reads counts and durations such as selector.debounce_ms.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// GetBool reads toggles such as selector.mouse.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

// GetStringSlice reads lists such as remote.variants, given either as a
// list or as "list, search, q".
func (s *ConfigStore) GetStringSlice(key string) []string {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		return parts
	}
	return nil
}

func (s *ConfigStore) Set(key string, value any) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

// Save and Load are no-ops: ephemeral settings live for one run.
func (s *ConfigStore) Save() error { return nil }

func (s *ConfigStore) Load() error { return nil }

// Path is empty so "settings show" prints no config file location.
func (s *ConfigStore) Path() string { return "" }
