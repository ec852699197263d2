package domain

import (
	"fmt"
	"strconv"
)

// Item is an opaque record handed to list selectors: field name to displayed value.
// Its business meaning is owned by the caller, never by the selector.
type Item map[string]any

// Field returns the display form of a field.
// Missing or nil fields render as the empty string.
func (i Item) Field(key string) string {
	v, ok := i[key]
	if !ok || v == nil {
		return ""
	}
	return formatValue(v)
}

// Has reports whether the field is present and non-nil.
func (i Item) Has(key string) bool {
	v, ok := i[key]
	return ok && v != nil
}

// Key returns a stable identity for rendering.
// It uses idField when set and present, otherwise the positional index.
func (i Item) Key(idField string, index int) string {
	if idField != "" {
		if id := i.Field(idField); id != "" {
			return id
		}
	}
	return strconv.Itoa(index)
}

// Clone returns a shallow copy of the item.
func (i Item) Clone() Item {
	if i == nil {
		return nil
	}
	out := make(Item, len(i))
	for k, v := range i {
		out[k] = v
	}
	return out
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
