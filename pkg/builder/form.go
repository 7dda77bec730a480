package builder

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FormDefinition is the on-disk shape of a form: the live fields in order plus
// the session markers that still need persisting.
type FormDefinition struct {
	Fields     []FieldDefinition `yaml:"fields"`
	NewIDs     []string          `yaml:"new_ids,omitempty"`
	RemovedIDs []string          `yaml:"removed_ids,omitempty"`
}

// FieldDefinition serialises a single field.
type FieldDefinition struct {
	ID      string             `yaml:"id"`
	Attrs   map[string]any     `yaml:"attrs,omitempty"`
	Options []OptionDefinition `yaml:"options,omitempty"`
}

// OptionDefinition serialises a single list option.
type OptionDefinition struct {
	ID    string         `yaml:"id"`
	Attrs map[string]any `yaml:"attrs,omitempty"`
}

// DecodeForm parses a YAML form definition into a registry. Fields and options
// without an explicit order are ordered by their position in the document.
func DecodeForm(data []byte) (*Registry, error) {
	var def FormDefinition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&def); err != nil && err != io.EOF {
		return nil, fmt.Errorf("builder: decode form: %w", err)
	}
	return def.Registry()
}

// LoadForm reads and parses a YAML form definition.
func LoadForm(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("builder: read form: %w", err)
	}
	return DecodeForm(data)
}

// Registry materialises the definition into a live registry.
func (d FormDefinition) Registry() (*Registry, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	for idx, fd := range d.Fields {
		field := NewField(fd.ID, fd.Attrs)
		if _, ok := field.Attr(AttrOrder); !ok {
			field.SetOrder(idx)
		}
		for optIdx, od := range fd.Options {
			opt := NewOption(od.ID, od.Attrs)
			if _, ok := opt.Attr(AttrOrder); !ok {
				opt.SetOrder(optIdx)
			}
			if err := field.Options().Add(opt); err != nil {
				return nil, fmt.Errorf("builder: field %q option %q: %w", fd.ID, od.ID, err)
			}
		}
		if err := reg.Add(field); err != nil {
			return nil, fmt.Errorf("builder: field %q: %w", fd.ID, err)
		}
	}
	for _, id := range d.NewIDs {
		reg.MarkNew(id)
	}
	for _, id := range d.RemovedIDs {
		reg.MarkRemoved(id)
	}
	return reg, nil
}

// Snapshot captures the registry's current state.
func Snapshot(reg *Registry) FormDefinition {
	def := FormDefinition{
		NewIDs:     reg.NewIDs(),
		RemovedIDs: reg.RemovedIDs(),
	}
	for _, field := range reg.Fields() {
		fd := FieldDefinition{ID: field.EntityID(), Attrs: field.Attrs()}
		if field.HasOptions() {
			for _, opt := range field.Options().Options() {
				fd.Options = append(fd.Options, OptionDefinition{ID: opt.EntityID(), Attrs: opt.Attrs()})
			}
		}
		def.Fields = append(def.Fields, fd)
	}
	return def
}

// EncodeForm writes the registry snapshot as YAML.
func EncodeForm(w io.Writer, reg *Registry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Snapshot(reg)); err != nil {
		return fmt.Errorf("builder: encode form: %w", err)
	}
	return enc.Close()
}

// IDs returns the IDs of the supplied entities in the given order.
func IDs[T Entity](entities []T) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.EntityID())
	}
	return out
}
