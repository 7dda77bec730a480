package builder

import (
	"sort"
	"strings"
	"sync"
)

// Registry is the live field collection of a form. Besides the fields it keeps
// two auxiliary ID sets: fields added in this session and fields removed in
// this session, both awaiting persistence.
type Registry struct {
	fields orderedSet[*Field]

	mu         sync.RWMutex
	newIDs     map[string]struct{}
	removedIDs map[string]struct{}
}

// NewRegistry builds a registry seeded with the supplied fields.
func NewRegistry(fields ...*Field) (*Registry, error) {
	reg := &Registry{
		newIDs:     make(map[string]struct{}),
		removedIDs: make(map[string]struct{}),
	}
	for _, field := range fields {
		if err := reg.Add(field); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Add registers a field at its sorted position.
func (r *Registry) Add(field *Field) error {
	if field == nil || strings.TrimSpace(field.id) == "" {
		return ErrInvalidID
	}
	if !r.fields.add(field) {
		return ErrFieldExists
	}
	return nil
}

// Remove drops the field by identity.
func (r *Registry) Remove(field *Field) bool {
	if r == nil || field == nil {
		return false
	}
	return r.fields.remove(field)
}

// Lookup finds a live field by ID.
func (r *Registry) Lookup(id string) (*Field, bool) {
	if r == nil {
		return nil, false
	}
	return r.fields.lookup(id)
}

// Contains reports whether this exact field is live.
func (r *Registry) Contains(field *Field) bool {
	if r == nil || field == nil {
		return false
	}
	return r.fields.contains(field)
}

// ContainsEntity resolves fields against the registry and options against
// their owning field's collection.
func (r *Registry) ContainsEntity(entity Entity) bool {
	switch e := entity.(type) {
	case *Field:
		return r.Contains(e)
	case *Option:
		owner, ok := r.Lookup(e.Parent())
		if !ok {
			return false
		}
		return owner.Options().Contains(e)
	default:
		return false
	}
}

// OptionCollection resolves a field's option collection by field ID.
func (r *Registry) OptionCollection(fieldID string) (*OptionCollection, bool) {
	field, ok := r.Lookup(fieldID)
	if !ok {
		return nil, false
	}
	return field.Options(), true
}

// Sort re-orders the fields by their order attribute.
func (r *Registry) Sort() {
	if r == nil {
		return
	}
	r.fields.sort()
}

// Fields returns the live fields in sort order.
func (r *Registry) Fields() []*Field {
	if r == nil {
		return nil
	}
	return r.fields.snapshot()
}

// Len returns the number of live fields.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return r.fields.len()
}

// NextOrder returns an order value placing a new field after every live one.
func (r *Registry) NextOrder() int {
	next := 0
	for _, field := range r.Fields() {
		if o := field.Order(); o >= next {
			next = o + 1
		}
	}
	return next
}

// MarkNew flags a field ID as added during this session.
func (r *Registry) MarkNew(id string) { r.mark(&r.newIDs, id, true) }

// ClearNew removes the "newly added" marker.
func (r *Registry) ClearNew(id string) { r.mark(&r.newIDs, id, false) }

// IsNew reports whether the field ID was added during this session.
func (r *Registry) IsNew(id string) bool { return r.has(&r.newIDs, id) }

// MarkRemoved flags a field ID as removed during this session.
func (r *Registry) MarkRemoved(id string) { r.mark(&r.removedIDs, id, true) }

// ClearRemoved removes the "pending removal" marker.
func (r *Registry) ClearRemoved(id string) { r.mark(&r.removedIDs, id, false) }

// IsRemoved reports whether the field ID is pending removal.
func (r *Registry) IsRemoved(id string) bool { return r.has(&r.removedIDs, id) }

// NewIDs returns the IDs flagged as added, sorted.
func (r *Registry) NewIDs() []string { return r.keys(&r.newIDs) }

// RemovedIDs returns the IDs flagged as removed, sorted.
func (r *Registry) RemovedIDs() []string { return r.keys(&r.removedIDs) }

func (r *Registry) mark(set *map[string]struct{}, id string, on bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if *set == nil {
		*set = make(map[string]struct{})
	}
	if on {
		(*set)[id] = struct{}{}
		return
	}
	delete(*set, id)
}

func (r *Registry) has(set *map[string]struct{}, id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := (*set)[id]
	return ok
}

func (r *Registry) keys(set *map[string]struct{}) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(*set) == 0 {
		return nil
	}
	out := make([]string, 0, len(*set))
	for id := range *set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
