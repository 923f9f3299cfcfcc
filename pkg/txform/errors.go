package txform

import "errors"

var (
	// ErrUnknownField is returned when a change targets a field the form does not define.
	ErrUnknownField = errors.New("unknown form field")
	// ErrDuplicateField is raised when two fields share a name.
	ErrDuplicateField = errors.New("duplicate form field")
)
