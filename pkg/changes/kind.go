package changes

import (
	"fmt"
	"strings"
)

// Kind tags a Record with the builder action it describes.
type Kind string

const (
	KindChangeSetting    Kind = "changeSetting"
	KindSortFields       Kind = "sortFields"
	KindAddField         Kind = "addField"
	KindRemoveField      Kind = "removeField"
	KindDuplicateField   Kind = "duplicateField"
	KindAddListOption    Kind = "addListOption"
	KindRemoveListOption Kind = "removeListOption"
	KindSortListOptions  Kind = "sortListOptions"
)

// Kinds lists every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindChangeSetting,
		KindSortFields,
		KindAddField,
		KindRemoveField,
		KindDuplicateField,
		KindAddListOption,
		KindRemoveListOption,
		KindSortListOptions,
	}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind accepts the camelCase kind names, case-insensitively, with an
// optional "undo:" prefix as used by the request names.
func ParseKind(raw string) (Kind, error) {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(name, "undo:")
	for _, known := range Kinds() {
		if strings.EqualFold(name, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChangeKind, raw)
}

// RequestName returns the named undo request for the kind, e.g.
// "undo:changeSetting".
func (k Kind) RequestName() string {
	return "undo:" + string(k)
}
