package virtopt

import (
	"strings"
)

// namePattern is the compiled form of a descriptor name. Names are
// dot-separated segments; a segment ending in '#' matches its literal
// prefix followed by an optional decimal index ("cell#" matches "cell",
// "cell0", "cell12"). Index values are extracted at bind time.
type namePattern struct {
	raw      string
	segments []patternSegment
}

type patternSegment struct {
	literal string
	indexed bool // literal is a prefix followed by optional digits
}

func compilePattern(name string) *namePattern {
	parts := strings.Split(name, ".")
	segs := make([]patternSegment, len(parts))
	for i, part := range parts {
		if prefix, ok := strings.CutSuffix(part, "#"); ok {
			segs[i] = patternSegment{literal: prefix, indexed: true}
		} else {
			segs[i] = patternSegment{literal: part}
		}
	}

	return &namePattern{raw: name, segments: segs}
}

// match tests cliname against the pattern and returns the indices
// extracted from the indexed segments, in order. A missing index digit
// run matches and yields index 0, so "cell.id" binds like "cell0.id".
func (p *namePattern) match(cliname string) ([]int, bool) {
	parts := strings.Split(cliname, ".")
	if len(parts) != len(p.segments) {
		return nil, false
	}

	var indices []int
	for i, seg := range p.segments {
		if !seg.indexed {
			if parts[i] != seg.literal {
				return nil, false
			}
			continue
		}

		digits, ok := strings.CutPrefix(parts[i], seg.literal)
		if !ok {
			return nil, false
		}
		idx := 0
		for _, r := range digits {
			if r < '0' || r > '9' {
				return nil, false
			}
			idx = idx*10 + int(r-'0')
		}
		indices = append(indices, idx)
	}

	return indices, true
}

// overlaps reports whether some concrete option name could match both
// patterns. Registering two overlapping descriptors for one family is a
// programming error caught at registration time.
func (p *namePattern) overlaps(other *namePattern) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, seg := range p.segments {
		o := other.segments[i]
		switch {
		case !seg.indexed && !o.indexed:
			if seg.literal != o.literal {
				return false
			}
		case seg.indexed && o.indexed:
			if seg.literal != o.literal {
				return false
			}
		case seg.indexed:
			if !segmentMatchesIndexed(o.literal, seg.literal) {
				return false
			}
		default:
			if !segmentMatchesIndexed(seg.literal, o.literal) {
				return false
			}
		}
	}

	return true
}

// segmentMatchesIndexed reports whether the literal segment text would
// match an indexed segment with the given prefix.
func segmentMatchesIndexed(literal, prefix string) bool {
	digits, ok := strings.CutPrefix(literal, prefix)
	if !ok {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
