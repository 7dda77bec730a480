package changes

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// prepareFunc validates a record against the live registry and returns the
// mutation that inverts it. It must not change any state itself.
type prepareFunc func(rec *Record) (apply func(), err error)

// Engine undoes change records against a field registry. A single lock covers
// resolve, mutate and finalize for each operation, and is shared with the
// Recorder built from the engine.
type Engine struct {
	mu       sync.Mutex
	registry *builder.Registry
	log      *Log
	host     Host
	logger   *slog.Logger
	handlers map[Kind]prepareFunc
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New wires an engine to the registry and log it mutates. A nil host ignores
// every signal.
func New(registry *builder.Registry, log *Log, host Host, opts ...Option) (*Engine, error) {
	if registry == nil || log == nil {
		return nil, ErrMisconfigured
	}
	if host == nil {
		host = NopHost{}
	}
	e := &Engine{
		registry: registry,
		log:      log,
		host:     host,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	e.handlers = map[Kind]prepareFunc{
		KindChangeSetting:    e.prepareChangeSetting,
		KindSortFields:       e.prepareSortFields,
		KindAddField:         e.prepareAddField,
		KindRemoveField:      e.prepareRemoveField,
		KindDuplicateField:   e.prepareDuplicateField,
		KindAddListOption:    e.prepareAddListOption,
		KindRemoveListOption: e.prepareRemoveListOption,
		KindSortListOptions:  e.prepareSortListOptions,
	}
	return e, nil
}

// Registry returns the registry the engine mutates.
func (e *Engine) Registry() *builder.Registry { return e.registry }

// Log returns the change log the engine consumes.
func (e *Engine) Log() *Log { return e.log }

// Undo inverts rec and, when consume is true, removes it from the log. On
// error nothing is mutated and no host signal is sent.
func (e *Engine) Undo(rec *Record, consume bool) error {
	if rec == nil {
		return ErrNilRecord
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.undoLocked(rec, consume)
}

// UndoChangeSetting handles the undo:changeSetting request.
func (e *Engine) UndoChangeSetting(rec *Record, consume bool) error {
	return e.undoAs(KindChangeSetting, rec, consume)
}

// UndoSortFields handles the undo:sortFields request.
func (e *Engine) UndoSortFields(rec *Record, consume bool) error {
	return e.undoAs(KindSortFields, rec, consume)
}

// UndoAddField handles the undo:addField request.
func (e *Engine) UndoAddField(rec *Record, consume bool) error {
	return e.undoAs(KindAddField, rec, consume)
}

// UndoRemoveField handles the undo:removeField request.
func (e *Engine) UndoRemoveField(rec *Record, consume bool) error {
	return e.undoAs(KindRemoveField, rec, consume)
}

// UndoDuplicateField handles the undo:duplicateField request.
func (e *Engine) UndoDuplicateField(rec *Record, consume bool) error {
	return e.undoAs(KindDuplicateField, rec, consume)
}

// UndoAddListOption handles the undo:addListOption request.
func (e *Engine) UndoAddListOption(rec *Record, consume bool) error {
	return e.undoAs(KindAddListOption, rec, consume)
}

// UndoRemoveListOption handles the undo:removeListOption request.
func (e *Engine) UndoRemoveListOption(rec *Record, consume bool) error {
	return e.undoAs(KindRemoveListOption, rec, consume)
}

// UndoSortListOptions handles the undo:sortListOptions request.
func (e *Engine) UndoSortListOptions(rec *Record, consume bool) error {
	return e.undoAs(KindSortListOptions, rec, consume)
}

// UndoAll reverts every enabled record newest first without consuming them,
// then clears the log, marks the session clean and closes the drawer. It stops
// at the first failing record; records already reverted stay reverted and the
// log is left as it was.
func (e *Engine) UndoAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	records := e.log.Records()
	if len(records) == 0 {
		return nil
	}
	for idx := len(records) - 1; idx >= 0; idx-- {
		rec := records[idx]
		// Cascades from newer add-family records may already have dropped it.
		if !e.log.Contains(rec) || rec.Disabled() {
			continue
		}
		if err := e.undoLocked(rec, false); err != nil {
			return err
		}
	}
	e.log.Clear()
	e.host.Persist()
	e.host.SetClean(true)
	e.host.CloseDrawer()
	e.logger.Info("changes: undo all", "records", len(records))
	return nil
}

func (e *Engine) undoAs(kind Kind, rec *Record, consume bool) error {
	if rec == nil {
		return ErrNilRecord
	}
	if rec.Kind != kind {
		return &UndoError{RecordID: rec.ID, Kind: rec.Kind, Err: fmt.Errorf("%w: want %s", ErrKindMismatch, kind)}
	}
	return e.Undo(rec, consume)
}

func (e *Engine) undoLocked(rec *Record, consume bool) error {
	prepare, ok := e.handlers[rec.Kind]
	if !ok {
		return e.fail(rec, fmt.Errorf("%w: %q", ErrUnknownChangeKind, rec.Kind))
	}
	if rec.Disabled() {
		return e.fail(rec, fmt.Errorf("%w: record is disabled", ErrDanglingSubject))
	}
	apply, err := prepare(rec)
	if err != nil {
		return e.fail(rec, err)
	}
	apply()
	e.finalize(rec, consume)
	e.logger.Debug("changes: undone", "record", rec.ID, "kind", rec.Kind, "consume", consume, "remaining", e.log.Size())
	return nil
}

// finalize always asks the host to persist. Consuming the last record marks
// the session clean and closes the review drawer.
func (e *Engine) finalize(rec *Record, consume bool) {
	e.host.Persist()
	if !consume {
		return
	}
	e.log.Remove(rec)
	if e.log.Size() == 0 {
		e.host.SetClean(true)
		e.host.CloseDrawer()
	}
}

func (e *Engine) fail(rec *Record, err error) error {
	e.logger.Warn("changes: undo failed", "record", rec.ID, "kind", rec.Kind, "error", err)
	return &UndoError{RecordID: rec.ID, Kind: rec.Kind, Err: err}
}
