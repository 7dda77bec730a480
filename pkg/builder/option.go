package builder

// Option is a list choice owned by a field's OptionCollection.
type Option struct {
	id     string
	parent string
	attrs  attributes
}

// NewOption constructs an option with a copy of the supplied attributes. The
// parent is assigned when the option joins a collection.
func NewOption(id string, attrs map[string]any) *Option {
	o := &Option{id: id, attrs: make(attributes, len(attrs))}
	for k, v := range attrs {
		o.attrs[k] = v
	}
	return o
}

// EntityID implements Entity.
func (o *Option) EntityID() string {
	if o == nil {
		return ""
	}
	return o.id
}

// Parent returns the ID of the field whose collection last held the option.
func (o *Option) Parent() string {
	if o == nil {
		return ""
	}
	return o.parent
}

// Attr returns a single attribute.
func (o *Option) Attr(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	return o.attrs.get(key)
}

// SetAttr writes a single attribute. A nil value deletes the key.
func (o *Option) SetAttr(key string, value any) {
	if o == nil {
		return
	}
	if o.attrs == nil {
		o.attrs = make(attributes)
	}
	if value == nil {
		delete(o.attrs, key)
		return
	}
	o.attrs[key] = value
}

// Attrs returns a copy of every attribute.
func (o *Option) Attrs() map[string]any {
	if o == nil {
		return nil
	}
	return o.attrs.clone()
}

// Order implements Ordered.
func (o *Option) Order() int {
	if o == nil {
		return 0
	}
	return o.attrs.order()
}

// SetOrder implements Ordered.
func (o *Option) SetOrder(order int) {
	o.SetAttr(AttrOrder, order)
}
