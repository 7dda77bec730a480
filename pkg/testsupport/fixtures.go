package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/builder"
)

// SampleForm is the YAML form used across package tests: three plain fields
// and a select field with three options.
const SampleForm = `fields:
  - id: name
    attrs:
      label: Name
      type: textbox
      required: true
      order: 0
  - id: email
    attrs:
      label: Email
      type: email
      order: 1
  - id: topic
    attrs:
      label: Topic
      type: listselect
      order: 2
    options:
      - id: sales
        attrs: {label: Sales, value: sales, order: 0}
      - id: support
        attrs: {label: Support, value: support, order: 1}
      - id: other
        attrs: {label: Other, value: other, order: 2}
  - id: message
    attrs:
      label: Message
      type: textarea
      order: 3
`

// SampleRegistry parses SampleForm into a fresh registry.
func SampleRegistry(t *testing.T) *builder.Registry {
	t.Helper()

	reg, err := builder.DecodeForm([]byte(SampleForm))
	if err != nil {
		t.Fatalf("decode sample form: %v", err)
	}
	return reg
}

// MustField looks up a field and fails the test when it is missing.
func MustField(t *testing.T, reg *builder.Registry, id string) *builder.Field {
	t.Helper()

	field, ok := reg.Lookup(id)
	if !ok {
		t.Fatalf("field %q not found", id)
	}
	return field
}

// MustOption looks up an option of fieldID and fails the test when missing.
func MustOption(t *testing.T, reg *builder.Registry, fieldID, optionID string) *builder.Option {
	t.Helper()

	field := MustField(t, reg, fieldID)
	opt, ok := field.Options().Lookup(optionID)
	if !ok {
		t.Fatalf("option %q of field %q not found", optionID, fieldID)
	}
	return opt
}

// RecordingHost captures the signals sent to a change host.
type RecordingHost struct {
	mu           sync.Mutex
	Persists     int
	CleanCalls   []bool
	DrawerCloses int
}

// Persist implements changes.Host.
func (h *RecordingHost) Persist() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Persists++
}

// SetClean implements changes.Host.
func (h *RecordingHost) SetClean(clean bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.CleanCalls = append(h.CleanCalls, clean)
}

// CloseDrawer implements changes.Host.
func (h *RecordingHost) CloseDrawer() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.DrawerCloses++
}

// Clean reports the last clean flag sent, defaulting to true for a session
// that never changed.
func (h *RecordingHost) Clean() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.CleanCalls) == 0 {
		return true
	}
	return h.CleanCalls[len(h.CleanCalls)-1]
}

// Reset zeroes every counter.
func (h *RecordingHost) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Persists = 0
	h.CleanCalls = nil
	h.DrawerCloses = 0
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// EncodeForm renders the registry snapshot as YAML for golden comparisons.
func EncodeForm(t *testing.T, reg *builder.Registry) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := builder.EncodeForm(&buf, reg); err != nil {
		t.Fatalf("encode form: %v", err)
	}
	return buf.Bytes()
}
