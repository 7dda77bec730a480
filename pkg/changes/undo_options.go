package changes

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

func (e *Engine) prepareAddListOption(rec *Record) (func(), error) {
	collection, err := e.optionCollection(rec)
	if err != nil {
		return nil, err
	}
	opt, ok := rec.Subject.(*builder.Option)
	if !ok || opt == nil || !collection.Contains(opt) {
		return nil, danglingEntity(rec.Subject)
	}
	return func() {
		e.dropOptionDependents(opt, rec)
		collection.Remove(opt)
	}, nil
}

func (e *Engine) prepareRemoveListOption(rec *Record) (func(), error) {
	collection, err := e.optionCollection(rec)
	if err != nil {
		return nil, err
	}
	opt, ok := rec.Subject.(*builder.Option)
	if !ok || opt == nil {
		return nil, danglingEntity(rec.Subject)
	}
	if _, taken := collection.Lookup(opt.EntityID()); taken {
		return nil, fmt.Errorf("%w: option %q", ErrSubjectExists, opt.EntityID())
	}
	return func() {
		if err := collection.Add(opt); err != nil {
			e.logger.Error("changes: restore option", "option", opt.EntityID(), "error", err)
			return
		}
		e.enableOthers(opt, rec)
		e.enableSortRecords(opt, rec)
	}, nil
}

func (e *Engine) prepareSortListOptions(rec *Record) (func(), error) {
	payload, ok := rec.Payload.(SortPayload)
	if !ok || payload.Scope.IsFields() || len(payload.Orders) == 0 {
		return nil, fmt.Errorf("%w: sortListOptions needs an option scope and order changes", ErrEmptyPayload)
	}
	collection, ok := e.registry.OptionCollection(payload.Scope.FieldID)
	if !ok {
		return nil, fmt.Errorf("%w: field %q", ErrDanglingSubject, payload.Scope.FieldID)
	}
	for _, change := range payload.Orders {
		if change.Entity == nil {
			return nil, fmt.Errorf("%w: sortListOptions order change without entity", ErrEmptyPayload)
		}
		opt, ok := change.Entity.(*builder.Option)
		if !ok || !collection.Contains(opt) {
			return nil, danglingEntity(change.Entity)
		}
	}
	return func() {
		restoreOrders(payload.Orders)
		collection.Sort()
	}, nil
}

// optionCollection resolves the owning collection named by the record's
// OptionPayload scope through the registry, so a field that was removed and
// restored in between still resolves to its live collection.
func (e *Engine) optionCollection(rec *Record) (*builder.OptionCollection, error) {
	payload, ok := rec.Payload.(OptionPayload)
	if !ok || payload.Scope.IsFields() {
		return nil, fmt.Errorf("%w: %s needs an option scope", ErrEmptyPayload, rec.Kind)
	}
	collection, ok := e.registry.OptionCollection(payload.Scope.FieldID)
	if !ok {
		return nil, fmt.Errorf("%w: field %q", ErrDanglingSubject, payload.Scope.FieldID)
	}
	return collection, nil
}
