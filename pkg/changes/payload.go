package changes

import "github.com/goliatone/go-formbuilder/pkg/builder"

// Payload is the kind-specific data of a Record.
type Payload interface {
	payload()
}

// SettingPayload backs KindChangeSetting.
type SettingPayload struct {
	Attr   string
	Before any
	After  any
}

// OrderChange records one entity's order before and after a sort.
type OrderChange struct {
	Entity builder.Ordered
	Before int
	After  int
}

// Scope names the collection a record operates on. The zero Scope is the
// field registry; a Scope with a FieldID is that field's option collection.
// Scopes are resolved through the registry at undo time.
type Scope struct {
	FieldID string
}

// FieldsScope targets the field registry.
func FieldsScope() Scope { return Scope{} }

// OptionsScope targets the option collection of fieldID.
func OptionsScope(fieldID string) Scope { return Scope{FieldID: fieldID} }

// IsFields reports whether the scope is the field registry.
func (s Scope) IsFields() bool { return s.FieldID == "" }

// SortPayload backs KindSortFields and KindSortListOptions.
type SortPayload struct {
	Scope  Scope
	Orders []OrderChange
}

// OptionPayload backs KindAddListOption and KindRemoveListOption.
type OptionPayload struct {
	Scope Scope
}

func (SettingPayload) payload() {}
func (SortPayload) payload() {}
func (OptionPayload) payload() {}
