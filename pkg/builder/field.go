package builder

// Field is a single form field. Its identity is the pointer: the change log
// compares subjects by reference, not by ID.
type Field struct {
	id      string
	attrs   attributes
	options *OptionCollection
}

// NewField constructs a field with a copy of the supplied attributes.
func NewField(id string, attrs map[string]any) *Field {
	f := &Field{id: id, attrs: make(attributes, len(attrs))}
	for k, v := range attrs {
		f.attrs[k] = v
	}
	return f
}

// EntityID implements Entity.
func (f *Field) EntityID() string {
	if f == nil {
		return ""
	}
	return f.id
}

// Attr returns a single attribute.
func (f *Field) Attr(key string) (any, bool) {
	if f == nil {
		return nil, false
	}
	return f.attrs.get(key)
}

// SetAttr writes a single attribute. A nil value deletes the key.
func (f *Field) SetAttr(key string, value any) {
	if f == nil {
		return
	}
	if f.attrs == nil {
		f.attrs = make(attributes)
	}
	if value == nil {
		delete(f.attrs, key)
		return
	}
	f.attrs[key] = value
}

// Attrs returns a copy of every attribute.
func (f *Field) Attrs() map[string]any {
	if f == nil {
		return nil
	}
	return f.attrs.clone()
}

// Order implements Ordered.
func (f *Field) Order() int {
	if f == nil {
		return 0
	}
	return f.attrs.order()
}

// SetOrder implements Ordered.
func (f *Field) SetOrder(order int) {
	f.SetAttr(AttrOrder, order)
}

// Options returns the field's option collection, creating it on first use.
func (f *Field) Options() *OptionCollection {
	if f == nil {
		return nil
	}
	if f.options == nil {
		f.options = NewOptionCollection(f.id)
	}
	return f.options
}

// HasOptions reports whether the field carries at least one option.
func (f *Field) HasOptions() bool {
	return f != nil && f.options != nil && f.options.Len() > 0
}

// Clone returns a new field with the given ID, the same attributes and a deep
// copy of the option collection.
func (f *Field) Clone(id string) *Field {
	clone := NewField(id, f.Attrs())
	if f.HasOptions() {
		for _, opt := range f.options.Options() {
			_ = clone.Options().Add(NewOption(opt.EntityID(), opt.Attrs()))
		}
	}
	return clone
}
