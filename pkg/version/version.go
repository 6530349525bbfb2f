// Package version parses and compares file format versions.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Report is the run report format written by this module.
const Report = "1.0"

// ErrIncompatible is returned by Check for a different major version.
var ErrIncompatible = errors.New("incompatible format version")

// Format is a parsed "major.minor" format version.
type Format struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (Format, error) {
	majorStr, minorStr, ok := strings.Cut(s, ".")
	if !ok || strings.Contains(minorStr, ".") {
		return Format{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(majorStr, 10, 16)
	if err != nil {
		return Format{}, fmt.Errorf("invalid version %q: bad major component", s)
	}
	minor, err := strconv.ParseUint(minorStr, 10, 16)
	if err != nil {
		return Format{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return Format{Major: uint16(major), Minor: uint16(minor)}, nil
}

// MustParse is like Parse but panics on error. Use for constants.
func MustParse(s string) Format {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// String returns the version as "major.minor".
func (f Format) String() string {
	return fmt.Sprintf("%d.%d", f.Major, f.Minor)
}

// Compatible returns true if other has the same major version. Minor
// versions only add optional fields.
func (f Format) Compatible(other Format) bool {
	return f.Major == other.Major
}

// Check verifies that a version read from a file can be handled by a
// reader implementing current.
func Check(got string, current Format) error {
	f, err := Parse(got)
	if err != nil {
		return err
	}
	if !current.Compatible(f) {
		return fmt.Errorf("%w: got %s, want %d.x", ErrIncompatible, f, current.Major)
	}
	return nil
}
