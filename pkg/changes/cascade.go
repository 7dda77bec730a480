package changes

import "github.com/goliatone/go-formbuilder/pkg/builder"

// dropFieldDependents removes every record other than keep that can only be
// undone while field is live: records about the field or its options, option
// records scoped to its ID, and the field's entries in sort records.
func (e *Engine) dropFieldDependents(field *builder.Field, keep *Record) {
	var options []*builder.Option
	if field.HasOptions() {
		options = field.Options().Options()
	}
	for _, other := range e.log.Records() {
		if other == keep {
			continue
		}
		if other.References(field) || referencesAny(other, options) || scopedTo(other, field.EntityID()) {
			e.log.Remove(other)
		}
	}
	e.stripOrders(field, keep)
}

// dropOptionDependents removes the records about opt and its sort entries.
func (e *Engine) dropOptionDependents(opt *builder.Option, keep *Record) {
	for _, other := range e.log.FindBySubject(opt) {
		if other != keep {
			e.log.Remove(other)
		}
	}
	e.stripOrders(opt, keep)
}

// stripOrders takes entity out of every sort record. A sort record left
// without entries is dropped.
func (e *Engine) stripOrders(entity builder.Ordered, keep *Record) {
	for _, other := range e.sortRecordsWith(entity) {
		if other == keep {
			continue
		}
		payload := other.Payload.(SortPayload)
		kept := make([]OrderChange, 0, len(payload.Orders))
		for _, change := range payload.Orders {
			if change.Entity != entity {
				kept = append(kept, change)
			}
		}
		if len(kept) == 0 {
			e.log.Remove(other)
			continue
		}
		payload.Orders = kept
		other.Payload = payload
	}
}

// sortRecordsWith returns the sort records that move entity, in log order.
func (e *Engine) sortRecordsWith(entity builder.Ordered) []*Record {
	var out []*Record
	for _, rec := range e.log.Records() {
		payload, ok := rec.Payload.(SortPayload)
		if !ok {
			continue
		}
		for _, change := range payload.Orders {
			if change.Entity == entity {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// enableOthers re-enables the records about subject except keep.
func (e *Engine) enableOthers(subject builder.Entity, keep *Record) {
	for _, other := range e.log.FindBySubject(subject) {
		if other != keep {
			e.enable(other)
		}
	}
}

// enableSortRecords re-enables the sort records that move entity.
func (e *Engine) enableSortRecords(entity builder.Ordered, keep *Record) {
	for _, other := range e.sortRecordsWith(entity) {
		if other != keep {
			e.enable(other)
		}
	}
}

// enable clears the disabled flag unless the record still moves an entity
// that is not live.
func (e *Engine) enable(rec *Record) {
	if payload, ok := rec.Payload.(SortPayload); ok {
		for _, change := range payload.Orders {
			if change.Entity == nil || !e.registry.ContainsEntity(change.Entity) {
				return
			}
		}
	}
	rec.SetDisabled(false)
}

func referencesAny(rec *Record, options []*builder.Option) bool {
	for _, opt := range options {
		if rec.References(opt) {
			return true
		}
	}
	return false
}

// scopedTo reports whether rec operates on the option collection of fieldID.
func scopedTo(rec *Record, fieldID string) bool {
	switch payload := rec.Payload.(type) {
	case OptionPayload:
		return !payload.Scope.IsFields() && payload.Scope.FieldID == fieldID
	case SortPayload:
		return !payload.Scope.IsFields() && payload.Scope.FieldID == fieldID
	default:
		return false
	}
}
