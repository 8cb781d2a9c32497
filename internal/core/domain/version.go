package domain

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a mod or game version as an ordered (major, minor, patch)
// triple. Missing trailing components parse as zero, so "1.2" and "1.2.0"
// are the same version.
type Version struct {
	Major int64
	Minor int64
	Patch int64
}

// NewVersion creates a Version from its components.
func NewVersion(major, minor, patch int64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// ParseVersion parses a version string of the form "major[.minor[.patch]]".
// It returns ErrMalformedVersion if any present component is not a
// non-negative integer.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) > 3 {
		return Version{}, zerr.With(ErrMalformedVersion, "version", s)
	}

	var components [3]int64
	for i, part := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || n < 0 {
			return Version{}, zerr.With(ErrMalformedVersion, "version", s)
		}
		components[i] = n
	}

	return Version{Major: components[0], Minor: components[1], Patch: components[2]}, nil
}

// Compare returns -1, 0 or 1 depending on whether v is ordered before,
// equal to, or after other. The order is lexicographic over the triple.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return cmpInt64(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpInt64(v.Minor, other.Minor)
	}
	return cmpInt64(v.Patch, other.Patch)
}

func cmpInt64(a, b int64) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Less reports whether v is strictly older than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// AtLeast reports whether v satisfies a minimum version requirement.
func (v Version) AtLeast(minimum Version) bool {
	return v.Compare(minimum) >= 0
}

// String renders the version in the canonical "major.minor.patch" form.
func (v Version) String() string {
	return strconv.FormatInt(v.Major, 10) + "." +
		strconv.FormatInt(v.Minor, 10) + "." +
		strconv.FormatInt(v.Patch, 10)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. JSON and YAML decoding
// of version strings go through here.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
