package domain

import "time"

// FieldID and FieldName are the canonical keys every record carries.
const (
	FieldID   = "id"
	FieldName = "name"
)

// Record is a catalogue row managed by storedesk.
type Record struct {
	// ID uniquely identifies the record within its kind.
	ID string

	// Kind is the catalogue entity type.
	Kind Kind

	// Fields holds the displayed values (name, phone, rate, ...).
	Fields map[string]any

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the record was last modified.
	UpdatedAt time.Time
}

// Name returns the record's display name.
func (r Record) Name() string {
	return Item(r.Fields).Field(FieldName)
}

// Item flattens the record into a selector item with the id set.
func (r Record) Item() Item {
	item := make(Item, len(r.Fields)+1)
	for k, v := range r.Fields {
		item[k] = v
	}
	item[FieldID] = r.ID
	return item
}

// Validate checks the record has the minimum required data.
func (r Record) Validate() error {
	if !r.Kind.IsValid() {
		return ErrUnknownKind
	}
	if r.Name() == "" {
		return ErrInvalidInput
	}
	return nil
}
