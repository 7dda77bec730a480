package changes

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// Record describes one builder action with enough data to invert it. Subject
// is a non-owning reference; the registry owns entity lifetime.
type Record struct {
	ID        string
	Kind      Kind
	Subject   builder.Entity
	Payload   Payload
	CreatedAt time.Time

	disabled bool
}

// NewRecord builds a record with a fresh ID.
func NewRecord(kind Kind, subject builder.Entity, payload Payload) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		Subject:   subject,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
}

// Disabled reports whether the record's subject is logically withdrawn, e.g.
// the field it edits has been removed.
func (r *Record) Disabled() bool {
	return r != nil && r.disabled
}

// SetDisabled toggles the withdrawn marker.
func (r *Record) SetDisabled(disabled bool) {
	if r == nil {
		return
	}
	r.disabled = disabled
}

// References reports whether the record's subject is exactly entity.
func (r *Record) References(entity builder.Entity) bool {
	if r == nil || entity == nil || r.Subject == nil {
		return false
	}
	return r.Subject == entity
}
