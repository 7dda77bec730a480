// Package changes records edits to a form's field graph and undoes them.
//
// A Recorder applies a builder action and appends a Record describing it to
// the Log. The Engine inverts a Record against the live builder.Registry:
//
//	reg, _ := builder.NewRegistry(fields...)
//	log := changes.NewLog()
//	engine, _ := changes.New(reg, log, host)
//	rec, _ := engine.Recorder().ChangeSetting(field, "label", "Email")
//	_ = engine.Undo(rec, true)
//
// Undo validates the record before touching any state. A failed undo returns
// an *UndoError wrapping one of the package sentinels and leaves both the
// registry and the log unchanged. Undoing add-family records drops every
// other record about the same subject; undoing remove-family records
// re-enables them instead.
package changes
