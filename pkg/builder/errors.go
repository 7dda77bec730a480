package builder

import "errors"

var (
	// ErrInvalidID is returned when an entity without an identifier is added.
	ErrInvalidID = errors.New("builder: entity id is required")
	// ErrFieldExists signals a field with the same ID is already registered.
	ErrFieldExists = errors.New("builder: field already exists")
	// ErrFieldNotFound signals a lookup against an unknown field ID.
	ErrFieldNotFound = errors.New("builder: field not found")
	// ErrOptionExists signals an option with the same ID is already present in
	// the owning collection.
	ErrOptionExists = errors.New("builder: option already exists")
	// ErrOptionNotFound signals a lookup against an unknown option ID.
	ErrOptionNotFound = errors.New("builder: option not found")
)
