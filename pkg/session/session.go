// Package session implements the host side of the change engine: the dirty
// flag of an editing session, snapshot persistence and the drawer close
// signal.
package session

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/changes"
)

// Session tracks one form editing session. It satisfies changes.Host.
type Session struct {
	registry     *builder.Registry
	snapshotPath string
	logger       *slog.Logger

	mu       sync.Mutex
	clean    bool
	persists int
	lastErr  error
	onClose  []func()
}

var _ changes.Host = (*Session)(nil)

// Option configures a Session.
type Option func(*Session)

// WithSnapshotPath makes Persist write the registry as YAML to path.
func WithSnapshotPath(path string) Option {
	return func(s *Session) {
		s.snapshotPath = path
	}
}

// WithLogger sets the structured logger. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New starts a clean session over registry.
func New(registry *builder.Registry, opts ...Option) *Session {
	s := &Session{
		registry: registry,
		clean:    true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Attach marks the session clean whenever log empties, including bulk clears
// that bypass the engine.
func (s *Session) Attach(log *changes.Log) {
	log.OnEmpty(func() { s.SetClean(true) })
}

// OnCloseDrawer registers fn to run on CloseDrawer.
func (s *Session) OnCloseDrawer(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClose = append(s.onClose, fn)
}

// Persist writes a snapshot when a path is configured. Errors are logged and
// kept for LastError; the caller is never blocked on them.
func (s *Session) Persist() {
	s.mu.Lock()
	s.persists++
	path := s.snapshotPath
	s.mu.Unlock()

	if path == "" {
		return
	}
	err := writeSnapshot(path, s.registry)
	if err != nil {
		s.logger.Error("session: persist failed", "path", path, "error", err)
	} else {
		s.logger.Debug("session: persisted", "path", path)
	}
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// SetClean sets the dirty/clean flag.
func (s *Session) SetClean(clean bool) {
	s.mu.Lock()
	changed := s.clean != clean
	s.clean = clean
	s.mu.Unlock()
	if changed {
		s.logger.Debug("session: clean state changed", "clean", clean)
	}
}

// CloseDrawer runs the registered drawer close hooks.
func (s *Session) CloseDrawer() {
	s.mu.Lock()
	hooks := append([]func(){}, s.onClose...)
	s.mu.Unlock()
	for _, fn := range hooks {
		fn()
	}
}

// Clean reports whether the session has no pending changes.
func (s *Session) Clean() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clean
}

// Persists returns how many times Persist ran.
func (s *Session) Persists() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persists
}

// LastError returns the error of the most recent snapshot write, if any.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func writeSnapshot(path string, reg *builder.Registry) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.yaml")
	if err != nil {
		return fmt.Errorf("session: create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := builder.EncodeForm(tmp, reg); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("session: replace snapshot: %w", err)
	}
	return nil
}
