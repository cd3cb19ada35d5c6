package render

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Renderer lays out DOT source.
type Renderer interface {
	// Render returns src laid out in the given Graphviz output format.
	Render(ctx context.Context, src []byte, format string) ([]byte, error)
	// Version returns the layout engine version, or [Unknown].
	Version(ctx context.Context) Version
	// Name identifies the renderer in logs and cache keys.
	Name() string
}

// Version is a dotted version number such as 2.43.0.
type Version []int

// Unknown is the version reported when detection fails.
var Unknown = Version{0}

var versionRe = regexp.MustCompile(`(?i)(?:dot|graphviz) version ([\d.]+)`)

// ParseVersion extracts the version from `dot -V` output such as
// "dot - graphviz version 2.43.0 (0)". It returns [Unknown] when output does
// not contain one.
func ParseVersion(output string) Version {
	m := versionRe.FindStringSubmatch(output)
	if m == nil {
		return Unknown
	}
	var v Version
	for _, part := range strings.Split(m[1], ".") {
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			break
		}
		v = append(v, n)
	}
	if len(v) == 0 {
		return Unknown
	}
	return v
}

// Compare returns -1, 0 or +1 comparing v and o element by element; a
// version that is a prefix of the other is smaller.
func (v Version) Compare(o Version) int {
	return slices.Compare(v, o)
}

// AtLeast reports whether v >= the version given by parts.
func (v Version) AtLeast(parts ...int) bool {
	return v.Compare(Version(parts)) >= 0
}

// IsUnknown reports whether detection failed.
func (v Version) IsUnknown() bool {
	return len(v) == 0 || v.Compare(Unknown) == 0
}

func (v Version) String() string {
	if v.IsUnknown() {
		return "unknown"
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}
