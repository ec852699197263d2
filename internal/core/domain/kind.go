package domain

import "strings"

// Kind identifies a catalogue entity type.
type Kind string

// Managed catalogue kinds.
const (
	KindCustomer Kind = "customer"
	KindColor    Kind = "color"
	KindDesign   Kind = "design"
	KindTax      Kind = "tax"
	KindUser     Kind = "user"
	KindGroup    Kind = "group"
	KindItem     Kind = "item"
)

// IsValid returns true if the kind is managed by storedesk.
func (k Kind) IsValid() bool {
	switch k {
	case KindCustomer, KindColor, KindDesign, KindTax, KindUser, KindGroup, KindItem:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a kind name, accepting plurals and any case.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if k := Kind(name); k.IsValid() {
		return k, nil
	}
	switch name {
	case "colour", "colours":
		return KindColor, nil
	case "taxes":
		return KindTax, nil
	}
	if k := Kind(strings.TrimSuffix(name, "s")); k.IsValid() {
		return k, nil
	}
	return "", ErrUnknownKind
}

// AllKinds returns the managed kinds in menu order.
func AllKinds() []Kind {
	return []Kind{KindCustomer, KindItem, KindColor, KindDesign, KindTax, KindUser, KindGroup}
}

// KindView holds the display defaults every consumer uses for a kind.
type KindView struct {
	// Kind is the entity type.
	Kind Kind

	// Title is the dialog heading.
	Title string

	// DisplayKeys are the fields rendered as columns, in order.
	DisplayKeys []string

	// Headers are the column labels aligned with DisplayKeys.
	Headers []string

	// SearchFields are the fields a lookup matches the search term against.
	SearchFields []string

	// ColumnWidths are per-field layout hints ("12" cells or "30%").
	ColumnWidths map[string]string

	// IDField is the field used as a stable render key.
	IDField string

	// Aliases maps canonical field names to backend-specific names,
	// tried in order during normalisation.
	Aliases map[string][]string
}

// commonAliases covers the field names the legacy backend uses across entities.
var commonAliases = map[string][]string{
	FieldID:   {"id", "fcode", "fId", "fid", "code"},
	FieldName: {"name", "fitemname", "fAcname", "fName", "fname"},
}

func withAliases(extra map[string][]string) map[string][]string {
	out := make(map[string][]string, len(commonAliases)+len(extra))
	for k, v := range commonAliases {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// DefaultKindView returns the display defaults for a kind.
func DefaultKindView(k Kind) (KindView, bool) {
	switch k {
	case KindCustomer:
		return KindView{
			Kind:         k,
			Title:        "Select Customer",
			DisplayKeys:  []string{"id", "name", "phone", "city"},
			Headers:      []string{"Code", "Name", "Phone", "City"},
			SearchFields: []string{"name", "phone", "city"},
			ColumnWidths: map[string]string{"id": "10%", "phone": "16"},
			IDField:      FieldID,
			Aliases: withAliases(map[string][]string{
				"phone": {"phone", "fPhone", "fMobile", "mobile"},
				"city":  {"city", "fCity", "fPlace"},
			}),
		}, true
	case KindItem:
		return KindView{
			Kind:         k,
			Title:        "Select Item",
			DisplayKeys:  []string{"id", "name", "group", "rate"},
			Headers:      []string{"Code", "Item", "Group", "Rate"},
			SearchFields: []string{"name", "group"},
			ColumnWidths: map[string]string{"id": "10%", "rate": "10"},
			IDField:      FieldID,
			Aliases: withAliases(map[string][]string{
				"group": {"group", "fGroup", "fgroupname"},
				"rate":  {"rate", "fRate", "fSrate"},
			}),
		}, true
	case KindColor:
		return KindView{
			Kind:         k,
			Title:        "Select Colour",
			DisplayKeys:  []string{"id", "name"},
			Headers:      []string{"Code", "Colour"},
			SearchFields: []string{"name"},
			ColumnWidths: map[string]string{"id": "20%"},
			IDField:      FieldID,
			Aliases:      withAliases(nil),
		}, true
	case KindDesign:
		return KindView{
			Kind:         k,
			Title:        "Select Design",
			DisplayKeys:  []string{"id", "name", "category"},
			Headers:      []string{"Code", "Design", "Category"},
			SearchFields: []string{"name", "category"},
			ColumnWidths: map[string]string{"id": "15%"},
			IDField:      FieldID,
			Aliases: withAliases(map[string][]string{
				"category": {"category", "fCategory"},
			}),
		}, true
	case KindTax:
		return KindView{
			Kind:         k,
			Title:        "Select Tax",
			DisplayKeys:  []string{"id", "name", "rate"},
			Headers:      []string{"Code", "Tax", "Rate %"},
			SearchFields: []string{"name"},
			ColumnWidths: map[string]string{"id": "15%", "rate": "10"},
			IDField:      FieldID,
			Aliases: withAliases(map[string][]string{
				"rate": {"rate", "fTaxper", "fRate"},
			}),
		}, true
	case KindUser:
		return KindView{
			Kind:         k,
			Title:        "Select User",
			DisplayKeys:  []string{"id", "name", "role"},
			Headers:      []string{"Code", "User", "Role"},
			SearchFields: []string{"name", "role"},
			ColumnWidths: map[string]string{"id": "15%"},
			IDField:      FieldID,
			Aliases: withAliases(map[string][]string{
				"name": {"name", "fUname", "fUserName", "fName"},
				"role": {"role", "fRole", "fUtype"},
			}),
		}, true
	case KindGroup:
		return KindView{
			Kind:         k,
			Title:        "Select Group",
			DisplayKeys:  []string{"id", "name", "description"},
			Headers:      []string{"Code", "Group", "Description"},
			SearchFields: []string{"name", "description"},
			ColumnWidths: map[string]string{"id": "15%"},
			IDField:      FieldID,
			Aliases: withAliases(map[string][]string{
				"name":        {"name", "fgroupname", "fName"},
				"description": {"description", "fDesc"},
			}),
		}, true
	default:
		return KindView{}, false
	}
}
