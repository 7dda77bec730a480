package builder

import "strings"

// OptionCollection holds the list choices of a single field.
type OptionCollection struct {
	owner string
	set   orderedSet[*Option]
}

// NewOptionCollection returns an empty collection owned by fieldID.
func NewOptionCollection(fieldID string) *OptionCollection {
	return &OptionCollection{owner: fieldID}
}

// Owner returns the ID of the owning field.
func (c *OptionCollection) Owner() string {
	if c == nil {
		return ""
	}
	return c.owner
}

// Add inserts an option at its sorted position and adopts it.
func (c *OptionCollection) Add(opt *Option) error {
	if opt == nil || strings.TrimSpace(opt.id) == "" {
		return ErrInvalidID
	}
	if !c.set.add(opt) {
		return ErrOptionExists
	}
	opt.parent = c.owner
	return nil
}

// Remove drops the option by identity. The option keeps its parent so it can
// be re-inserted later.
func (c *OptionCollection) Remove(opt *Option) bool {
	if c == nil || opt == nil {
		return false
	}
	return c.set.remove(opt)
}

// Lookup finds an option by ID.
func (c *OptionCollection) Lookup(id string) (*Option, bool) {
	if c == nil {
		return nil, false
	}
	return c.set.lookup(id)
}

// Contains reports whether this exact option is present.
func (c *OptionCollection) Contains(opt *Option) bool {
	if c == nil || opt == nil {
		return false
	}
	return c.set.contains(opt)
}

// Sort re-orders the collection by each option's order attribute.
func (c *OptionCollection) Sort() {
	if c == nil {
		return
	}
	c.set.sort()
}

// Options returns the options in sort order.
func (c *OptionCollection) Options() []*Option {
	if c == nil {
		return nil
	}
	return c.set.snapshot()
}

// Len returns the number of options.
func (c *OptionCollection) Len() int {
	if c == nil {
		return 0
	}
	return c.set.len()
}
