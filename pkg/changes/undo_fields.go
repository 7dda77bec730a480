package changes

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

func (e *Engine) prepareChangeSetting(rec *Record) (func(), error) {
	payload, ok := rec.Payload.(SettingPayload)
	if !ok || payload.Attr == "" {
		return nil, fmt.Errorf("%w: changeSetting needs an attribute", ErrEmptyPayload)
	}
	if rec.Subject == nil || !e.registry.ContainsEntity(rec.Subject) {
		return nil, danglingEntity(rec.Subject)
	}
	subject := rec.Subject
	return func() {
		subject.SetAttr(payload.Attr, payload.Before)
	}, nil
}

func (e *Engine) prepareSortFields(rec *Record) (func(), error) {
	payload, ok := rec.Payload.(SortPayload)
	if !ok || len(payload.Orders) == 0 {
		return nil, fmt.Errorf("%w: sortFields needs order changes", ErrEmptyPayload)
	}
	for _, change := range payload.Orders {
		if change.Entity == nil {
			return nil, fmt.Errorf("%w: sortFields order change without entity", ErrEmptyPayload)
		}
		field, ok := change.Entity.(*builder.Field)
		if !ok || !e.registry.Contains(field) {
			return nil, danglingEntity(change.Entity)
		}
	}
	return func() {
		restoreOrders(payload.Orders)
		e.registry.Sort()
	}, nil
}

func (e *Engine) prepareAddField(rec *Record) (func(), error) {
	field, err := e.liveField(rec)
	if err != nil {
		return nil, err
	}
	return func() {
		e.registry.ClearNew(field.EntityID())
		e.dropFieldDependents(field, rec)
		e.registry.Remove(field)
	}, nil
}

func (e *Engine) prepareDuplicateField(rec *Record) (func(), error) {
	field, err := e.liveField(rec)
	if err != nil {
		return nil, err
	}
	return func() {
		e.dropFieldDependents(field, rec)
		e.registry.Remove(field)
	}, nil
}

func (e *Engine) prepareRemoveField(rec *Record) (func(), error) {
	field, ok := rec.Subject.(*builder.Field)
	if !ok || field == nil {
		return nil, danglingEntity(rec.Subject)
	}
	if _, taken := e.registry.Lookup(field.EntityID()); taken {
		return nil, fmt.Errorf("%w: field %q", ErrSubjectExists, field.EntityID())
	}
	return func() {
		if err := e.registry.Add(field); err != nil {
			e.logger.Error("changes: restore field", "field", field.EntityID(), "error", err)
			return
		}
		e.registry.ClearRemoved(field.EntityID())
		e.enableOthers(field, rec)
		e.enableSortRecords(field, rec)
		if field.HasOptions() {
			for _, opt := range field.Options().Options() {
				e.enableOthers(opt, rec)
			}
		}
	}, nil
}

func (e *Engine) liveField(rec *Record) (*builder.Field, error) {
	field, ok := rec.Subject.(*builder.Field)
	if !ok || field == nil || !e.registry.Contains(field) {
		return nil, danglingEntity(rec.Subject)
	}
	return field, nil
}

func restoreOrders(orders []OrderChange) {
	for _, change := range orders {
		change.Entity.SetOrder(change.Before)
	}
}

func danglingEntity(entity builder.Entity) error {
	if entity == nil {
		return fmt.Errorf("%w: no subject", ErrDanglingSubject)
	}
	return fmt.Errorf("%w: %T %q", ErrDanglingSubject, entity, entity.EntityID())
}
