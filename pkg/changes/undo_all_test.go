package changes_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/changes"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestUndoAll_RestoresOriginalForm(t *testing.T) {
	f := newFixture(t)
	original := testsupport.EncodeForm(t, f.reg)
	email := testsupport.MustField(t, f.reg, "email")
	phone := builder.NewField("phone", map[string]any{"label": "Phone"})

	mustRecord(t)(f.recorder.ChangeSetting(email, builder.AttrLabel, "E-mail"))
	mustRecord(t)(f.recorder.AddField(phone))
	mustRecord(t)(f.recorder.ChangeSetting(phone, builder.AttrRequired, true))
	mustRecord(t)(f.recorder.SortFields([]string{"phone", "email", "name", "topic", "message"}))
	mustRecord(t)(f.recorder.RemoveField("email"))
	mustRecord(t)(f.recorder.RemoveListOption("topic", "other"))
	f.host.Reset()

	if err := f.engine.UndoAll(); err != nil {
		t.Fatalf("undo all: %v", err)
	}
	if diff := cmp.Diff(string(original), string(testsupport.EncodeForm(t, f.reg))); diff != "" {
		t.Fatalf("form not restored (-want +got):\n%s", diff)
	}
	if f.log.Size() != 0 {
		t.Fatalf("log size = %d, want 0", f.log.Size())
	}
	if !f.host.Clean() || f.host.DrawerCloses != 1 {
		t.Fatalf("expected clean session and one drawer close, got %+v", f.host)
	}
}

func TestUndoAll_EmptyLogIsNoOp(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.UndoAll(); err != nil {
		t.Fatalf("undo all: %v", err)
	}
	if f.host.Persists != 0 || f.host.DrawerCloses != 0 {
		t.Fatalf("empty undo all must not signal: %+v", f.host)
	}
}

func TestUndoAll_StopsOnFailure(t *testing.T) {
	f := newFixture(t)
	mustRecord(t)(f.recorder.ChangeSetting(testsupport.MustField(t, f.reg, "name"), "label", "X"))
	bad := changes.NewRecord(changes.KindAddField, builder.NewField("ghost", nil), nil)
	f.log.Append(bad)

	err := f.engine.UndoAll()
	if !errors.Is(err, changes.ErrDanglingSubject) {
		t.Fatalf("expected ErrDanglingSubject, got %v", err)
	}
	if f.log.Size() != 2 {
		t.Fatalf("log size = %d, want 2", f.log.Size())
	}
}
