package changes

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownChangeKind is returned for records whose kind has no handler.
	ErrUnknownChangeKind = errors.New("changes: unknown change kind")
	// ErrDanglingSubject is returned when a record's subject, sort entity or
	// owning collection cannot be resolved in the registry.
	ErrDanglingSubject = errors.New("changes: dangling subject")
	// ErrEmptyPayload is returned when a record lacks the payload its kind
	// requires.
	ErrEmptyPayload = errors.New("changes: empty payload")
	// ErrSubjectExists is returned when re-inserting an entity whose ID is
	// already live.
	ErrSubjectExists = errors.New("changes: subject already present")
	// ErrKindMismatch is returned by the named undo operations when handed a
	// record of another kind.
	ErrKindMismatch = errors.New("changes: record kind mismatch")
	// ErrNilRecord is returned when undo is called without a record.
	ErrNilRecord = errors.New("changes: record is nil")
	// ErrMisconfigured is returned by New without a registry or log.
	ErrMisconfigured = errors.New("changes: registry and log are required")
)

// UndoError reports a failed undo. The log and registry are unchanged.
type UndoError struct {
	RecordID string
	Kind     Kind
	Err      error
}

func (e *UndoError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("changes: undo %s record %s: %v", e.Kind, e.RecordID, e.Err)
}

func (e *UndoError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
