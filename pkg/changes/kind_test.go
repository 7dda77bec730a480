package changes

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	cases := []struct {
		raw  string
		want Kind
	}{
		{raw: "changeSetting", want: KindChangeSetting},
		{raw: "undo:sortListOptions", want: KindSortListOptions},
		{raw: " ADDFIELD ", want: KindAddField},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.raw)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseKind(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
	if _, err := ParseKind("renameForm"); !errors.Is(err, ErrUnknownChangeKind) {
		t.Fatalf("expected ErrUnknownChangeKind, got %v", err)
	}
}

func TestKind_ValidAndRequestName(t *testing.T) {
	for _, kind := range Kinds() {
		if !kind.Valid() {
			t.Fatalf("%s should be valid", kind)
		}
	}
	if Kind("bogus").Valid() {
		t.Fatalf("bogus kind reported valid")
	}
	if got := KindRemoveField.RequestName(); got != "undo:removeField" {
		t.Fatalf("RequestName() = %q", got)
	}
}
