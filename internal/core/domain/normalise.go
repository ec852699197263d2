package domain

import "strings"

// Normalise flattens a backend row into a single Item.
//
// For every canonical field the first alias with a non-empty value wins.
// Fields not named in any alias list are copied through unchanged.
func Normalise(raw map[string]any, aliases map[string][]string) Item {
	item := make(Item, len(raw))
	consumed := make(map[string]bool)

	for canonical, names := range aliases {
		for _, name := range names {
			consumed[name] = true
		}
		for _, name := range names {
			if v, ok := raw[name]; ok && v != nil && Item(raw).Field(name) != "" {
				item[canonical] = v
				break
			}
		}
	}

	for k, v := range raw {
		if consumed[k] {
			continue
		}
		if _, exists := item[k]; !exists {
			item[k] = v
		}
	}
	return item
}

// MatchesSearch reports whether any of the fields contains the search term,
// case-insensitively. An empty term matches everything; no fields means all fields.
func MatchesSearch(item Item, fields []string, search string) bool {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	if len(fields) == 0 {
		for k := range item {
			if strings.Contains(strings.ToLower(item.Field(k)), term) {
				return true
			}
		}
		return false
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(item.Field(f)), term) {
			return true
		}
	}
	return false
}
