package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/changes"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestSession_TracksCleanStateThroughEngine(t *testing.T) {
	reg := testsupport.SampleRegistry(t)
	log := changes.NewLog()
	sess := session.New(reg)
	sess.Attach(log)
	closes := 0
	sess.OnCloseDrawer(func() { closes++ })

	engine, err := changes.New(reg, log, sess)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if !sess.Clean() {
		t.Fatalf("new session should be clean")
	}

	rec, err := engine.Recorder().ChangeSetting(testsupport.MustField(t, reg, "name"), builder.AttrLabel, "Full name")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if sess.Clean() {
		t.Fatalf("session should be dirty after a change")
	}
	if err := engine.Undo(rec, true); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !sess.Clean() {
		t.Fatalf("session should be clean after undoing the last change")
	}
	if closes != 1 {
		t.Fatalf("closes = %d, want 1", closes)
	}
	if sess.Persists() != 2 {
		t.Fatalf("persists = %d, want 2", sess.Persists())
	}
}

func TestSession_AttachMarksCleanOnBulkClear(t *testing.T) {
	reg := testsupport.SampleRegistry(t)
	log := changes.NewLog()
	sess := session.New(reg)
	sess.Attach(log)

	log.Append(changes.NewRecord(changes.KindAddField, testsupport.MustField(t, reg, "name"), nil))
	sess.SetClean(false)
	log.Clear()
	if !sess.Clean() {
		t.Fatalf("expected clean after clearing the log")
	}
}

func TestSession_PersistWritesSnapshot(t *testing.T) {
	reg := testsupport.SampleRegistry(t)
	path := filepath.Join(t.TempDir(), "form.yaml")
	sess := session.New(reg, session.WithSnapshotPath(path))

	testsupport.MustField(t, reg, "email").SetAttr(builder.AttrLabel, "E-mail")
	sess.Persist()
	if err := sess.LastError(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer file.Close()
	restored, err := builder.LoadForm(file)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if diff := cmp.Diff(builder.Snapshot(reg), builder.Snapshot(restored)); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_PersistErrorIsKept(t *testing.T) {
	reg := testsupport.SampleRegistry(t)
	path := filepath.Join(t.TempDir(), "missing", "form.yaml")
	sess := session.New(reg, session.WithSnapshotPath(path))

	sess.Persist()
	if sess.LastError() == nil {
		t.Fatalf("expected an error writing into a missing directory")
	}
	if sess.Persists() != 1 {
		t.Fatalf("persists = %d, want 1", sess.Persists())
	}
}
