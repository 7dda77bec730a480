package changes

import (
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// Log is the insertion-ordered change log of an editing session.
type Log struct {
	mu      sync.RWMutex
	records []*Record
	onEmpty []func()
}

// NewLog returns an empty log.
func NewLog() *Log {
	return &Log{}
}

// OnEmpty registers fn to run whenever the log drops to zero records through
// Remove or Clear. Listeners run after the log lock is released.
func (l *Log) OnEmpty(fn func()) {
	if l == nil || fn == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onEmpty = append(l.onEmpty, fn)
}

// Append adds rec to the end of the log. Duplicates are not filtered.
func (l *Log) Append(rec *Record) {
	if l == nil || rec == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
}

// FindBySubject returns every record whose subject is exactly entity, in log
// order.
func (l *Log) FindBySubject(entity builder.Entity) []*Record {
	if l == nil || entity == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*Record
	for _, rec := range l.records {
		if rec.References(entity) {
			out = append(out, rec)
		}
	}
	return out
}

// Remove drops rec by identity and reports whether it was present.
func (l *Log) Remove(rec *Record) bool {
	if l == nil || rec == nil {
		return false
	}
	l.mu.Lock()
	idx := l.indexLocked(rec)
	if idx < 0 {
		l.mu.Unlock()
		return false
	}
	l.records = append(l.records[:idx], l.records[idx+1:]...)
	emptied := len(l.records) == 0
	listeners := l.listenersLocked(emptied)
	l.mu.Unlock()

	notify(listeners)
	return true
}

// Clear drops every record.
func (l *Log) Clear() {
	if l == nil {
		return
	}
	l.mu.Lock()
	emptied := len(l.records) > 0
	l.records = nil
	listeners := l.listenersLocked(emptied)
	l.mu.Unlock()

	notify(listeners)
}

// Size returns the number of records.
func (l *Log) Size() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Records returns a copy of the records in log order.
func (l *Log) Records() []*Record {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]*Record(nil), l.records...)
}

// Contains reports whether rec is in the log.
func (l *Log) Contains(rec *Record) bool {
	if l == nil || rec == nil {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.indexLocked(rec) >= 0
}

// Lookup finds a record by ID.
func (l *Log) Lookup(id string) (*Record, bool) {
	if l == nil {
		return nil, false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, rec := range l.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return nil, false
}

func (l *Log) indexLocked(rec *Record) int {
	for idx, existing := range l.records {
		if existing == rec {
			return idx
		}
	}
	return -1
}

func (l *Log) listenersLocked(emptied bool) []func() {
	if !emptied || len(l.onEmpty) == 0 {
		return nil
	}
	return append([]func(){}, l.onEmpty...)
}

func notify(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}
