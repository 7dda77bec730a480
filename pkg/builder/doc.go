// Package builder holds the live field graph edited by the form builder: a
// Registry of fields, each with an optional OptionCollection for list style
// fields (select, radio, checkbox list). Entities are plain attribute maps with
// an `order` attribute that drives sort position. The registry also tracks
// which field IDs were added or removed during the current editing session so
// the host knows what still needs to be persisted.
//
// Mutation is not synchronised at the entity level. Callers that edit entities
// from more than one goroutine serialise through changes.Engine, which owns the
// session lock.
package builder
