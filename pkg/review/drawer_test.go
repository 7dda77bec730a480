package review

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/changes"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

type stubDriver struct {
	selectIdx    []int
	confirm      []bool
	selectPos    int
	confirmPos   int
	menus        [][]string
	selects      []SelectConfig
	infoMessages []string
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.menus = append(s.menus, cfg.Options)
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type drawerFixture struct {
	reg      *builder.Registry
	engine   *changes.Engine
	session  *session.Session
	recorder *changes.Recorder
}

func newDrawerFixture(t *testing.T, driver PromptDriver, opts ...Option) (*drawerFixture, *Drawer) {
	t.Helper()

	reg := testsupport.SampleRegistry(t)
	log := changes.NewLog()
	sess := session.New(reg)
	sess.Attach(log)
	engine, err := changes.New(reg, log, sess)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	opts = append([]Option{WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "})}, opts...)
	drawer := New(engine, opts...)
	sess.OnCloseDrawer(drawer.Close)
	return &drawerFixture{reg: reg, engine: engine, session: sess, recorder: engine.Recorder()}, drawer
}

func TestDrawer_EmptyLog(t *testing.T) {
	driver := &stubDriver{}
	_, drawer := newDrawerFixture(t, driver)

	if err := drawer.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"No changes to review."}, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawer_UndoLastChangeClosesDrawer(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0}, confirm: []bool{true}}
	f, drawer := newDrawerFixture(t, driver)
	name := testsupport.MustField(t, f.reg, "name")
	if _, err := f.recorder.ChangeSetting(name, builder.AttrLabel, "Full name"); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := drawer.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !drawer.Closed() {
		t.Fatalf("drawer should close once the log is empty")
	}
	if !f.session.Clean() {
		t.Fatalf("session should be clean")
	}
	wantMenu := []string{`1. Changed label of "Full name" from "Name" to "Full name"`, labelUndoAll, labelDone}
	if diff := cmp.Diff([][]string{wantMenu}, driver.menus); diff != "" {
		t.Fatalf("menu mismatch (-want +got):\n%s", diff)
	}
	if got, _ := name.Attr(builder.AttrLabel); got != "Name" {
		t.Fatalf("label = %v, want Name", got)
	}
}

func TestDrawer_ListsNewestFirstAndMarksDisabled(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{1, 3}}
	f, drawer := newDrawerFixture(t, driver)
	email := testsupport.MustField(t, f.reg, "email")
	if _, err := f.recorder.ChangeSetting(email, builder.AttrRequired, true); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := f.recorder.RemoveField("email"); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := drawer.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	menu := driver.menus[0]
	if menu[0] != `1. Removed field "Email"` {
		t.Fatalf("unexpected first entry %q", menu[0])
	}
	if !strings.HasSuffix(menu[1], "(disabled)") {
		t.Fatalf("expected disabled marker on %q", menu[1])
	}
	if len(driver.infoMessages) != 1 || !strings.HasPrefix(driver.infoMessages[0], "! ") {
		t.Fatalf("expected a warning for the disabled entry, got %v", driver.infoMessages)
	}
	if f.engine.Log().Size() != 2 {
		t.Fatalf("log size = %d, want 2", f.engine.Log().Size())
	}
}

func TestDrawer_DeclinedConfirmKeepsEntry(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0, 2}, confirm: []bool{false}}
	f, drawer := newDrawerFixture(t, driver)
	if _, err := f.recorder.AddField(builder.NewField("phone", nil)); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := drawer.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if f.engine.Log().Size() != 1 {
		t.Fatalf("log size = %d, want 1", f.engine.Log().Size())
	}
	if _, ok := f.reg.Lookup("phone"); !ok {
		t.Fatalf("phone should still be registered")
	}
}

func TestDrawer_UndoAll(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{2}, confirm: []bool{true}}
	f, drawer := newDrawerFixture(t, driver)
	if _, err := f.recorder.AddField(builder.NewField("phone", nil)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := f.recorder.SortFields([]string{"message", "topic", "email", "name"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	if err := drawer.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if f.engine.Log().Size() != 0 || !f.session.Clean() {
		t.Fatalf("expected empty log and clean session")
	}
	if diff := cmp.Diff([]string{"name", "email", "topic", "message"}, builder.IDs(f.reg.Fields())); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"All changes undone."}, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawer_ReportsUndoFailureAndContinues(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0, 2}, confirm: []bool{true}}
	f, drawer := newDrawerFixture(t, driver)
	ghost := changes.NewRecord(changes.KindAddField, builder.NewField("ghost", nil), nil)
	f.engine.Log().Append(ghost)

	if err := drawer.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if f.engine.Log().Size() != 1 {
		t.Fatalf("failed entry must stay in the log")
	}
	if len(driver.infoMessages) != 1 || !strings.Contains(driver.infoMessages[0], "dangling subject") {
		t.Fatalf("expected failure message, got %v", driver.infoMessages)
	}
}

func TestDrawer_PropagatesDriverErrors(t *testing.T) {
	driver := &stubDriver{}
	f, drawer := newDrawerFixture(t, driver)
	if _, err := f.recorder.AddField(builder.NewField("phone", nil)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := drawer.Run(context.Background()); err == nil {
		t.Fatalf("expected driver error")
	}
}

func TestDrawer_SelectDefaultsToDoneWithPageSize(t *testing.T) {
	cases := []struct {
		name string
		opts []Option
		want int
	}{
		{name: "default page size", want: 10},
		{name: "custom page size", opts: []Option{WithPageSize(3)}, want: 3},
		{name: "non-positive page size ignored", opts: []Option{WithPageSize(0)}, want: 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			driver := &stubDriver{selectIdx: []int{2}}
			f, drawer := newDrawerFixture(t, driver, tc.opts...)
			if _, err := f.recorder.AddField(builder.NewField("phone", nil)); err != nil {
				t.Fatalf("record: %v", err)
			}

			if err := drawer.Run(context.Background()); err != nil {
				t.Fatalf("run: %v", err)
			}
			if len(driver.selects) != 1 {
				t.Fatalf("selects = %d, want 1", len(driver.selects))
			}
			cfg := driver.selects[0]
			if cfg.PageSize != tc.want {
				t.Fatalf("page size = %d, want %d", cfg.PageSize, tc.want)
			}
			if cfg.Options[cfg.DefaultIndex] != labelDone {
				t.Fatalf("default option = %q, want %q", cfg.Options[cfg.DefaultIndex], labelDone)
			}
		})
	}
}

func TestTranslateSurveyErr(t *testing.T) {
	other := errors.New("boom")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{name: "interrupt", in: terminal.InterruptErr, want: ErrAborted},
		{name: "closed input", in: io.EOF, want: ErrAborted},
		{name: "other", in: other, want: other},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := translateSurveyErr(tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("translateSurveyErr(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
