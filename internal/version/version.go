// Package version compares installed driver/runtime versions against minimums.
package version

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Version is a (major, minor) driver or runtime version. Both components are
// non-negative.
type Version struct {
	Major int
	Minor int
}

// New returns a Version
func New(major, minor int) Version {
	return Version{Major: major, Minor: minor}
}

// Parse reads versions such as "391.29", "535.104.05" or "391".
// Components past the minor are ignored.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version")
	}

	v, err := goversion.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}

	// go-version pads to at least three segments
	segments := v.Segments()
	return Version{Major: segments[0], Minor: segments[1]}, nil
}

func (v Version) core() *goversion.Version {
	return goversion.Must(goversion.NewVersion(fmt.Sprintf("%d.%d", v.Major, v.Minor)))
}

// Compare returns -1, 0 or 1 ordering v against other by major, then minor
func (v Version) Compare(other Version) int {
	return v.core().Compare(other.core())
}

// AtLeast reports whether v >= required
func (v Version) AtLeast(required Version) bool {
	return v.core().GreaterThanOrEqual(required.core())
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%02d", v.Major, v.Minor)
}

// MeetsMinimum reports whether the installed version string satisfies required.
// An unknown or unparsable installed version never passes.
func MeetsMinimum(installed string, required Version) bool {
	v, err := Parse(installed)
	if err != nil {
		return false
	}
	return v.AtLeast(required)
}
