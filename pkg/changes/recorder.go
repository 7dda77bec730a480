package changes

import (
	"fmt"
	"reflect"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// Recorder performs builder actions and logs a Record for each one. It shares
// the engine's lock, so recording and undoing never interleave.
type Recorder struct {
	engine *Engine
}

// Recorder returns a recorder bound to the engine's registry, log and host.
func (e *Engine) Recorder() *Recorder {
	return &Recorder{engine: e}
}

// ChangeSetting sets attr on entity. No record is produced when the value is
// unchanged.
func (r *Recorder) ChangeSetting(entity builder.Entity, attr string, value any) (*Record, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if attr == "" {
		return nil, fmt.Errorf("%w: attribute name is required", ErrEmptyPayload)
	}
	if entity == nil || !e.registry.ContainsEntity(entity) {
		return nil, danglingEntity(entity)
	}
	before, _ := entity.Attr(attr)
	if reflect.DeepEqual(before, value) {
		return nil, nil
	}
	entity.SetAttr(attr, value)
	return r.commit(NewRecord(KindChangeSetting, entity, SettingPayload{Attr: attr, Before: before, After: value})), nil
}

// SortFields assigns order = position to each listed field and re-sorts the
// registry. Fields whose order does not change are left out of the record.
func (r *Recorder) SortFields(ids []string) (*Record, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	fields := make([]builder.Ordered, 0, len(ids))
	for _, id := range ids {
		field, ok := e.registry.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", builder.ErrFieldNotFound, id)
		}
		fields = append(fields, field)
	}
	orders := reorder(fields)
	if len(orders) == 0 {
		return nil, nil
	}
	e.registry.Sort()
	return r.commit(NewRecord(KindSortFields, nil, SortPayload{Scope: FieldsScope(), Orders: orders})), nil
}

// AddField registers field as new in this session. Fields without an explicit
// order are appended after every live field.
func (r *Recorder) AddField(field *builder.Field) (*Record, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	if field == nil {
		return nil, builder.ErrInvalidID
	}
	if _, ok := field.Attr(builder.AttrOrder); !ok {
		field.SetOrder(e.registry.NextOrder())
	}
	if err := e.registry.Add(field); err != nil {
		return nil, err
	}
	e.registry.MarkNew(field.EntityID())
	return r.commit(NewRecord(KindAddField, field, nil)), nil
}

// DuplicateField clones the field srcID under newID and places the copy right
// after the source.
func (r *Recorder) DuplicateField(srcID, newID string) (*Record, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	src, ok := e.registry.Lookup(srcID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", builder.ErrFieldNotFound, srcID)
	}
	clone := src.Clone(newID)
	clone.SetOrder(src.Order())
	if err := e.registry.Add(clone); err != nil {
		return nil, err
	}
	return r.commit(NewRecord(KindDuplicateField, clone, nil)), nil
}

// RemoveField takes the field out of the registry. Every earlier record about
// the field or its options, and every sort record moving it, is disabled until
// the removal is undone.
func (r *Recorder) RemoveField(id string) (*Record, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	field, ok := e.registry.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", builder.ErrFieldNotFound, id)
	}
	e.registry.Remove(field)
	if !e.registry.IsNew(id) {
		e.registry.MarkRemoved(id)
	}
	disable(e.log.FindBySubject(field))
	disable(e.sortRecordsWith(field))
	if field.HasOptions() {
		for _, opt := range field.Options().Options() {
			disable(e.log.FindBySubject(opt))
		}
	}
	return r.commit(NewRecord(KindRemoveField, field, nil)), nil
}

// AddListOption appends opt to the option collection of fieldID.
func (r *Recorder) AddListOption(fieldID string, opt *builder.Option) (*Record, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	collection, ok := e.registry.OptionCollection(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", builder.ErrFieldNotFound, fieldID)
	}
	if opt == nil {
		return nil, builder.ErrInvalidID
	}
	if _, ok := opt.Attr(builder.AttrOrder); !ok {
		opt.SetOrder(nextOrder(collection.Options()))
	}
	if err := collection.Add(opt); err != nil {
		return nil, err
	}
	return r.commit(NewRecord(KindAddListOption, opt, OptionPayload{Scope: OptionsScope(fieldID)})), nil
}

// RemoveListOption drops optionID from fieldID's collection and disables the
// records about that option, sort records moving it included.
func (r *Recorder) RemoveListOption(fieldID, optionID string) (*Record, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	collection, ok := e.registry.OptionCollection(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", builder.ErrFieldNotFound, fieldID)
	}
	opt, ok := collection.Lookup(optionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", builder.ErrOptionNotFound, optionID)
	}
	collection.Remove(opt)
	disable(e.log.FindBySubject(opt))
	disable(e.sortRecordsWith(opt))
	return r.commit(NewRecord(KindRemoveListOption, opt, OptionPayload{Scope: OptionsScope(fieldID)})), nil
}

// SortListOptions assigns order = position to each listed option of fieldID.
func (r *Recorder) SortListOptions(fieldID string, ids []string) (*Record, error) {
	e := r.engine
	e.mu.Lock()
	defer e.mu.Unlock()

	collection, ok := e.registry.OptionCollection(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", builder.ErrFieldNotFound, fieldID)
	}
	options := make([]builder.Ordered, 0, len(ids))
	for _, id := range ids {
		opt, ok := collection.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", builder.ErrOptionNotFound, id)
		}
		options = append(options, opt)
	}
	orders := reorder(options)
	if len(orders) == 0 {
		return nil, nil
	}
	collection.Sort()
	field, _ := e.registry.Lookup(fieldID)
	return r.commit(NewRecord(KindSortListOptions, field, SortPayload{Scope: OptionsScope(fieldID), Orders: orders})), nil
}

func (r *Recorder) commit(rec *Record) *Record {
	e := r.engine
	e.log.Append(rec)
	e.host.SetClean(false)
	e.host.Persist()
	e.logger.Debug("changes: recorded", "record", rec.ID, "kind", rec.Kind, "size", e.log.Size())
	return rec
}

func reorder(entities []builder.Ordered) []OrderChange {
	var orders []OrderChange
	for position, entity := range entities {
		before := entity.Order()
		if before == position {
			continue
		}
		entity.SetOrder(position)
		orders = append(orders, OrderChange{Entity: entity, Before: before, After: position})
	}
	return orders
}

func nextOrder(options []*builder.Option) int {
	next := 0
	for _, opt := range options {
		if o := opt.Order(); o >= next {
			next = o + 1
		}
	}
	return next
}

func disable(records []*Record) {
	for _, rec := range records {
		rec.SetDisabled(true)
	}
}
