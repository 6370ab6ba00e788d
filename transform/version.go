package transform

import (
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/juju/errors"
)

// ParseVersion reads a version token made of dot-separated numeric segments.
// Segments are compared as integers, so "1.10" comes after "1.2". Prefixes,
// pre-release and build suffixes are rejected: "v1.0", "1.0-rc1" and
// "1.0+build" are not versions.
func ParseVersion(token string) (*version.Version, error) {
	if !numeric(token) {
		return nil, errors.NotValidf("version %q", token)
	}
	v, err := version.NewVersion(token)
	if err != nil {
		return nil, errors.NotValidf("version %q", token)
	}
	return v, nil
}

func numeric(token string) bool {
	for _, seg := range strings.Split(token, ".") {
		if seg == "" {
			return false
		}
		for _, c := range seg {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// CompareVersions returns -1, 0 or 1 when a is lower than, equal to, or
// greater than b. Both must be valid tokens.
func CompareVersions(a, b string) (int, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return 0, errors.Trace(err)
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return va.Compare(vb), nil
}
