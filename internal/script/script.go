// Package script replays a YAML list of builder actions through a
// changes.Recorder. The CLI uses it to drive an editing session without a UI.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/changes"
)

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one builder action. Action uses the change kind names.
type Step struct {
	Action string         `yaml:"action"`
	Field  string         `yaml:"field,omitempty"`
	Option string         `yaml:"option,omitempty"`
	As     string         `yaml:"as,omitempty"`
	Attr   string         `yaml:"attr,omitempty"`
	Value  any            `yaml:"value,omitempty"`
	Attrs  map[string]any `yaml:"attrs,omitempty"`
	Order  []string       `yaml:"order,omitempty"`
}

// ErrInvalidStep is returned for steps missing the data their action needs.
var ErrInvalidStep = errors.New("script: invalid step")

// Decode parses a YAML script.
func Decode(data []byte) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return Script{}, fmt.Errorf("script: decode: %w", err)
	}
	return s, nil
}

// Load reads and parses a YAML script.
func Load(r io.Reader) (Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("script: read: %w", err)
	}
	return Decode(data)
}

// Replay runs every step in order and returns the records produced. Steps that
// change nothing produce no record. Replay stops at the first failing step.
func Replay(rec *changes.Recorder, reg *builder.Registry, s Script) ([]*changes.Record, error) {
	var out []*changes.Record
	for idx, step := range s.Steps {
		record, err := apply(rec, reg, step)
		if err != nil {
			return out, fmt.Errorf("script: step %d (%s): %w", idx+1, step.Action, err)
		}
		if record != nil {
			out = append(out, record)
		}
	}
	return out, nil
}

func apply(rec *changes.Recorder, reg *builder.Registry, step Step) (*changes.Record, error) {
	kind, err := changes.ParseKind(step.Action)
	if err != nil {
		return nil, err
	}
	if kind != changes.KindSortFields && strings.TrimSpace(step.Field) == "" {
		return nil, fmt.Errorf("%w: field is required", ErrInvalidStep)
	}

	switch kind {
	case changes.KindChangeSetting:
		if step.Attr == "" {
			return nil, fmt.Errorf("%w: attr is required", ErrInvalidStep)
		}
		entity, err := resolve(reg, step.Field, step.Option)
		if err != nil {
			return nil, err
		}
		return rec.ChangeSetting(entity, step.Attr, step.Value)
	case changes.KindSortFields:
		return rec.SortFields(step.Order)
	case changes.KindAddField:
		return rec.AddField(builder.NewField(step.Field, step.Attrs))
	case changes.KindRemoveField:
		return rec.RemoveField(step.Field)
	case changes.KindDuplicateField:
		if step.As == "" {
			return nil, fmt.Errorf("%w: as is required", ErrInvalidStep)
		}
		return rec.DuplicateField(step.Field, step.As)
	case changes.KindAddListOption:
		if step.Option == "" {
			return nil, fmt.Errorf("%w: option is required", ErrInvalidStep)
		}
		return rec.AddListOption(step.Field, builder.NewOption(step.Option, step.Attrs))
	case changes.KindRemoveListOption:
		if step.Option == "" {
			return nil, fmt.Errorf("%w: option is required", ErrInvalidStep)
		}
		return rec.RemoveListOption(step.Field, step.Option)
	case changes.KindSortListOptions:
		return rec.SortListOptions(step.Field, step.Order)
	default:
		return nil, fmt.Errorf("%w: %q", changes.ErrUnknownChangeKind, kind)
	}
}

func resolve(reg *builder.Registry, fieldID, optionID string) (builder.Entity, error) {
	field, ok := reg.Lookup(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", builder.ErrFieldNotFound, fieldID)
	}
	if optionID == "" {
		return field, nil
	}
	opt, ok := field.Options().Lookup(optionID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", builder.ErrOptionNotFound, optionID)
	}
	return opt, nil
}
