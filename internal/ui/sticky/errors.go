package sticky

import (
	"errors"
	"fmt"
)

// ErrMissingHeader matches every [MissingHeaderError] through errors.Is.
var ErrMissingHeader = errors.New("sticky: missing header view")

// MissingHeaderError is returned when a [Source] produces no header view for
// a position that starts a section. It is a contract violation by the source
// and aborts the pass that needed the header.
type MissingHeaderError struct {
	Position int
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("sticky: source returned no header view for position %d", e.Position)
}

func (e *MissingHeaderError) Is(target error) bool {
	return target == ErrMissingHeader
}

// InvalidSectionRangeError describes a computed header position outside the
// source's rows. It happens transiently while the data set changes and is
// resolved by clearing the pinned header.
type InvalidSectionRangeError struct {
	Position int
	Count    int
}

func (e *InvalidSectionRangeError) Error() string {
	return fmt.Sprintf("sticky: header position %d outside [0, %d)", e.Position, e.Count)
}
