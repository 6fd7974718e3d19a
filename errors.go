package vtx

import (
	"errors"
	"fmt"
)

var (
	// ErrTooShort is returned when the input is shorter than the header.
	ErrTooShort = errors.New("vtx: container too short")
	// ErrInvalidPrefix is returned when the first three bytes are not "VTX".
	ErrInvalidPrefix = errors.New("vtx: invalid prefix (expected 'VTX')")
	// ErrUnsupportedVersion matches any *UnsupportedVersionError via errors.Is.
	ErrUnsupportedVersion = errors.New("vtx: unsupported version")
)

// UnsupportedVersionError reports a well-formed prefix followed by a
// version byte this package does not implement.
type UnsupportedVersionError struct {
	Version byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("vtx: unsupported version: %d", e.Version)
}

func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}
