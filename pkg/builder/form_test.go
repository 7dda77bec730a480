package builder_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestEncodeForm_Golden(t *testing.T) {
	reg := testsupport.SampleRegistry(t)
	reg.MarkNew("message")
	reg.MarkRemoved("legacy")

	got := testsupport.EncodeForm(t, reg)
	golden := filepath.Join("testdata", "sample_snapshot.golden.yaml")
	if testsupport.WriteMaybeGolden(t, golden, got) {
		return
	}
	var want, have builder.FormDefinition
	if err := yaml.Unmarshal(testsupport.MustReadGolden(t, golden), &want); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
	if err := yaml.Unmarshal(got, &have); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadForm_RestoresSessionMarkers(t *testing.T) {
	reg := testsupport.SampleRegistry(t)
	reg.MarkNew("message")
	reg.MarkRemoved("legacy")

	restored, err := builder.LoadForm(bytes.NewReader(testsupport.EncodeForm(t, reg)))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(builder.Snapshot(reg), builder.Snapshot(restored)); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeForm_EmptyDocument(t *testing.T) {
	reg, err := builder.DecodeForm(nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected empty registry, got %d fields", reg.Len())
	}
}
