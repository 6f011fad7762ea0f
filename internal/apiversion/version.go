// Package apiversion resolves which API version a request targets.
//
// A version can arrive in three places. The URL path segment (/api/v1/...)
// wins, then the api-version query parameter, then the X-Api-Version header
// (api-version is accepted as an alias). When none is given the default
// version applies. Two sources that disagree are rejected rather than
// silently picking one.
package apiversion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Version struct {
	Major int
	Minor int
}

var V1 = Version{Major: 1, Minor: 0}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Segment is the URL path form, "v1" for 1.0 and "v1.2" otherwise.
func (v Version) Segment() string {
	if v.Minor == 0 {
		return fmt.Sprintf("v%d", v.Major)
	}
	return "v" + v.String()
}

var (
	ErrInvalid     = errors.New("invalid api version")
	ErrUnsupported = errors.New("unsupported api version")
	ErrAmbiguous   = errors.New("ambiguous api version")
)

// Parse accepts "1", "1.0", "v1" and "v1.0" (the v is case-insensitive).
func Parse(raw string) (Version, error) {
	s := strings.TrimSpace(raw)
	if len(s) > 0 && (s[0] == 'v' || s[0] == 'V') {
		s = s[1:]
	}
	if s == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	majorStr, minorStr, hasMinor := strings.Cut(s, ".")
	major, err := parsePart(majorStr)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	minor := 0
	if hasMinor {
		if minor, err = parsePart(minorStr); err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
		}
	}
	return Version{Major: major, Minor: minor}, nil
}

func parsePart(s string) (int, error) {
	if s == "" || strings.ContainsAny(s, "+-") {
		return 0, ErrInvalid
	}
	return strconv.Atoi(s)
}

// Sources carries the raw version candidates found on a request. Empty
// strings mean "not specified".
type Sources struct {
	Path   string
	Query  string
	Header string
}

type Set struct {
	Default   Version
	Supported []Version
}

func DefaultSet() Set {
	return Set{Default: V1, Supported: []Version{V1}}
}

func (s Set) Supports(v Version) bool {
	for _, sv := range s.Supported {
		if sv == v {
			return true
		}
	}
	return false
}

// Header renders the api-supported-versions value, e.g. "1.0".
func (s Set) Header() string {
	parts := make([]string, 0, len(s.Supported))
	for _, v := range s.Supported {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, ", ")
}

// Resolve picks the effective version for a request.
func (s Set) Resolve(src Sources) (Version, error) {
	var (
		chosen Version
		found  bool
	)
	for _, raw := range []string{src.Path, src.Query, src.Header} {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		v, err := Parse(raw)
		if err != nil {
			return Version{}, err
		}
		if found && v != chosen {
			return Version{}, fmt.Errorf("%w: %s and %s", ErrAmbiguous, chosen, v)
		}
		chosen, found = v, true
	}
	if !found {
		chosen = s.Default
	}
	if !s.Supports(chosen) {
		return Version{}, fmt.Errorf("%w: %s", ErrUnsupported, chosen)
	}
	return chosen, nil
}
