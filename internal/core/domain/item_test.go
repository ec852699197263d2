package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItem_Field(t *testing.T) {
	item := Item{
		"name":   "Customer 5",
		"id":     float64(5),
		"rate":   12.5,
		"count":  3,
		"active": true,
		"empty":  nil,
	}

	assert.Equal(t, "Customer 5", item.Field("name"))
	assert.Equal(t, "5", item.Field("id"))
	assert.Equal(t, "12.5", item.Field("rate"))
	assert.Equal(t, "3", item.Field("count"))
	assert.Equal(t, "true", item.Field("active"))
	assert.Equal(t, "", item.Field("empty"))
	assert.Equal(t, "", item.Field("missing"))
}

func TestItem_Has(t *testing.T) {
	item := Item{"name": "x", "nil": nil}

	assert.True(t, item.Has("name"))
	assert.False(t, item.Has("nil"))
	assert.False(t, item.Has("missing"))
}

func TestItem_Key(t *testing.T) {
	item := Item{"id": "C-5"}

	assert.Equal(t, "C-5", item.Key("id", 3))
	assert.Equal(t, "3", item.Key("", 3))
	assert.Equal(t, "7", Item{}.Key("id", 7))
}

func TestItem_Clone(t *testing.T) {
	item := Item{"name": "a"}
	clone := item.Clone()
	clone["name"] = "b"

	assert.Equal(t, "a", item.Field("name"))
	assert.Nil(t, Item(nil).Clone())
}

func TestRecord_Item_Fields(t *testing.T) {
	r := Record{
		ID:        "c-1",
		Kind:      KindCustomer,
		Fields:    map[string]any{"name": "Alice", "city": "Pune"},
		CreatedAt: time.Now(),
	}

	item := r.Item()

	assert.Equal(t, "c-1", item.Field(FieldID))
	assert.Equal(t, "Alice", item.Field("name"))
	assert.Equal(t, "Pune", item.Field("city"))
	assert.Equal(t, "Alice", r.Name())
}

func TestRecord_Validate_Kinds(t *testing.T) {
	assert.NoError(t, Record{Kind: KindColor, Fields: map[string]any{"name": "Red"}}.Validate())
	assert.ErrorIs(t, Record{Kind: "invoice", Fields: map[string]any{"name": "x"}}.Validate(), ErrUnknownKind)
	assert.ErrorIs(t, Record{Kind: KindColor}.Validate(), ErrInvalidInput)
}
