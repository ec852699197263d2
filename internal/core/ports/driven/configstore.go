package driven

// ConfigStore is a flat key/value view of the settings file. Keys are
// dot-separated ("selector.page_size"); typed getters return the zero
// value when a key is missing or holds another type.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// GetStringSlice accepts a list or a comma-separated string.
	GetStringSlice(key string) []string

	// Set stores a value and persists it.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path returns where settings are written, or "" for in-memory stores.
	Path() string
}
