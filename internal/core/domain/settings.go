package domain

import (
	"strconv"
	"strings"
	"time"
)

// Remote request variants, tried in order until one returns 2xx.
const (
	VariantList   = "list"
	VariantSearch = "search"
	VariantQ      = "q"
	VariantName   = "name"
)

// AllVariants returns the known remote request variants in default order.
func AllVariants() []string {
	return []string{VariantList, VariantSearch, VariantQ, VariantName}
}

// IsValidVariant returns true if v is a known remote request variant.
func IsValidVariant(v string) bool {
	for _, known := range AllVariants() {
		if v == known {
			return true
		}
	}
	return false
}

// SelectorSettings configures list selector behaviour.
type SelectorSettings struct {
	// DebounceMs is the quiet period before a typed search is fetched.
	DebounceMs int

	// PageSize is the number of rows per lookup page.
	PageSize int

	// Breakpoint is the terminal width below which rows are stacked.
	Breakpoint int

	// MaxHeight caps the list region ("12" rows or "60%").
	MaxHeight string

	// Mouse enables hover highlighting and click selection.
	Mouse bool
}

// Debounce returns the debounce delay as a duration.
func (s SelectorSettings) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// Validate checks the selector settings are usable.
func (s SelectorSettings) Validate() error {
	if s.DebounceMs < 0 || s.PageSize < 1 || s.Breakpoint < 0 {
		return ErrInvalidInput
	}
	if s.MaxHeight != "" && !IsValidSizeSpec(s.MaxHeight) {
		return ErrInvalidInput
	}
	return nil
}

// RemoteSettings configures the REST item source.
type RemoteSettings struct {
	// URL is the backend base URL. Empty means lookups use the local store.
	URL string

	// Variants is the ordered request variant chain.
	Variants []string

	// RatePerSecond throttles outbound requests.
	RatePerSecond int
}

// Enabled returns true if a remote backend is configured.
func (r RemoteSettings) Enabled() bool {
	return r.URL != ""
}

// AppSettings is the complete application configuration.
type AppSettings struct {
	Selector SelectorSettings
	Remote   RemoteSettings
}

// DefaultAppSettings returns the defaults used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Selector: SelectorSettings{
			DebounceMs: 350,
			PageSize:   20,
			Breakpoint: 72,
			MaxHeight:  "60%",
			Mouse:      true,
		},
		Remote: RemoteSettings{
			Variants:      AllVariants(),
			RatePerSecond: 5,
		},
	}
}

// IsValidSizeSpec reports whether s is a cell count ("12") or a percentage ("30%").
func IsValidSizeSpec(s string) bool {
	s = strings.TrimSpace(s)
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		n, err := strconv.Atoi(pct)
		return err == nil && n > 0 && n <= 100
	}
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// ResolveSize converts a size spec to cells given the available total.
// Invalid or empty specs resolve to fallback.
func ResolveSize(spec string, total, fallback int) int {
	spec = strings.TrimSpace(spec)
	if !IsValidSizeSpec(spec) {
		return fallback
	}
	if pct, ok := strings.CutSuffix(spec, "%"); ok {
		n, _ := strconv.Atoi(pct)
		return total * n / 100
	}
	n, _ := strconv.Atoi(spec)
	return n
}
