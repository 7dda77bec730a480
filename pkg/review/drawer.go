// Package review is the terminal change-review drawer: it lists the change log
// newest first and lets the user undo a single change or every change.
package review

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/goliatone/go-formbuilder/pkg/changes"
)

const (
	labelUndoAll = "Undo all changes"
	labelDone    = "Done"
)

// Drawer drives the review loop against an engine.
type Drawer struct {
	engine   *changes.Engine
	driver   PromptDriver
	theme    Theme
	pageSize int
	closed   atomic.Bool
}

// New constructs a drawer using the survey driver unless overridden.
func New(engine *changes.Engine, opts ...Option) *Drawer {
	d := &Drawer{
		engine:   engine,
		driver:   NewSurveyDriver(),
		pageSize: 10,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Close asks a running review loop to stop after the current step. Hosts wire
// it to their CloseDrawer signal.
func (d *Drawer) Close() {
	d.closed.Store(true)
}

// Closed reports whether the drawer was closed.
func (d *Drawer) Closed() bool {
	return d.closed.Load()
}

// Run opens the drawer and loops until the user is done, the log empties or
// the host closes the drawer. A failed undo is reported and the entry stays.
func (d *Drawer) Run(ctx context.Context) error {
	d.closed.Store(false)
	for !d.closed.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		records := newestFirst(d.engine.Log().Records())
		if len(records) == 0 {
			return d.info(ctx, "No changes to review.")
		}

		options := make([]string, 0, len(records)+2)
		for idx, rec := range records {
			options = append(options, entryLabel(idx, rec))
		}
		options = append(options, labelUndoAll, labelDone)

		choice, err := d.driver.Select(ctx, SelectConfig{
			Message:      fmt.Sprintf("%d unsaved change(s). Select one to undo:", len(records)),
			Options:      options,
			DefaultIndex: len(options) - 1,
			PageSize:     d.pageSize,
		})
		if err != nil {
			return err
		}

		switch {
		case choice < 0 || choice >= len(options):
			return fmt.Errorf("review: invalid selection %d", choice)
		case choice == len(options)-1:
			d.Close()
		case choice == len(options)-2:
			if err := d.undoAll(ctx); err != nil {
				return err
			}
		default:
			if err := d.undoOne(ctx, records[choice]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Drawer) undoOne(ctx context.Context, rec *changes.Record) error {
	if rec.Disabled() {
		return d.warn(ctx, "This change belongs to a removed item. Undo the removal first.")
	}
	ok, err := d.driver.Confirm(ctx, ConfirmConfig{Message: "Undo: " + changes.Describe(rec) + "?", Default: true})
	if err != nil || !ok {
		return err
	}
	if err := d.engine.Undo(rec, true); err != nil {
		return d.reportUndoErr(ctx, err)
	}
	return d.info(ctx, "Undone: "+changes.Describe(rec))
}

func (d *Drawer) undoAll(ctx context.Context) error {
	ok, err := d.driver.Confirm(ctx, ConfirmConfig{Message: "Undo every change in this session?"})
	if err != nil || !ok {
		return err
	}
	if err := d.engine.UndoAll(); err != nil {
		return d.reportUndoErr(ctx, err)
	}
	return d.info(ctx, "All changes undone.")
}

// reportUndoErr surfaces undo failures to the user; only undo errors are
// recoverable, anything else ends the loop.
func (d *Drawer) reportUndoErr(ctx context.Context, err error) error {
	var undoErr *changes.UndoError
	if !errors.As(err, &undoErr) {
		return err
	}
	return d.warn(ctx, "Could not undo: "+err.Error())
}

func (d *Drawer) info(ctx context.Context, msg string) error {
	return d.driver.Info(ctx, d.theme.InfoPrefix+msg)
}

func (d *Drawer) warn(ctx context.Context, msg string) error {
	return d.driver.Info(ctx, d.theme.ErrorPrefix+msg)
}

func entryLabel(idx int, rec *changes.Record) string {
	label := fmt.Sprintf("%d. %s", idx+1, changes.Describe(rec))
	if rec.Disabled() {
		label += " (disabled)"
	}
	return label
}

func newestFirst(records []*changes.Record) []*changes.Record {
	out := make([]*changes.Record, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out
}
