package trigger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPattern is returned for malformed path patterns
var ErrInvalidPattern = errors.New("invalid path pattern")

type segment struct {
	literal  string
	wildcard string
}

// Pattern is a document path pattern such as /lowercase/{id}.
// A segment in braces is a wildcard that captures the matching path segment.
type Pattern struct {
	raw      string
	segments []segment
}

// ParsePattern compiles a path pattern
func ParsePattern(s string) (Pattern, error) {
	trimmed := strings.Trim(s, "/")
	if trimmed == "" {
		return Pattern{}, fmt.Errorf("%w: %q is empty", ErrInvalidPattern, s)
	}

	seen := map[string]bool{}
	parts := strings.Split(trimmed, "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Pattern{}, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPattern, s)
		}
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			if name == "" || strings.ContainsAny(name, "{}") {
				return Pattern{}, fmt.Errorf("%w: %q has a bad wildcard %q", ErrInvalidPattern, s, part)
			}
			if seen[name] {
				return Pattern{}, fmt.Errorf("%w: %q repeats wildcard %q", ErrInvalidPattern, s, name)
			}
			seen[name] = true
			segments = append(segments, segment{wildcard: name})
			continue
		}
		if strings.ContainsAny(part, "{}") {
			return Pattern{}, fmt.Errorf("%w: %q has a bad segment %q", ErrInvalidPattern, s, part)
		}
		segments = append(segments, segment{literal: part})
	}

	return Pattern{raw: "/" + trimmed, segments: segments}, nil
}

// MustParsePattern is like ParsePattern but panics on error
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) String() string {
	return p.raw
}

// Wildcards returns the wildcard names in path order
func (p Pattern) Wildcards() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.wildcard != "" {
			names = append(names, seg.wildcard)
		}
	}
	return names
}

// Match reports whether path matches the pattern and returns the captured wildcards
func (p Pattern) Match(path string) (map[string]string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, seg := range p.segments {
		if parts[i] == "" {
			return nil, false
		}
		if seg.wildcard != "" {
			params[seg.wildcard] = parts[i]
			continue
		}
		if parts[i] != seg.literal {
			return nil, false
		}
	}
	return params, true
}

// Expand substitutes params into the pattern. Every wildcard must be supplied.
func (p Pattern) Expand(params map[string]string) (string, error) {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.wildcard == "" {
			b.WriteString(seg.literal)
			continue
		}
		v := params[seg.wildcard]
		if v == "" {
			return "", fmt.Errorf("%w: %s (pattern %s)", ErrMissingParam, seg.wildcard, p.raw)
		}
		b.WriteString(v)
	}
	return b.String(), nil
}
