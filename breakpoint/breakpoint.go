// Package breakpoint decides whether candidate recombination breakpoints
// are sufficiently different from breakpoints already reported, to avoid
// presenting near-duplicate locations for one recombinant.
package breakpoint

import "github.com/seqtools/recomb/encoding/rec"

// Span is a single (start, end) breakpoint estimate.
type Span struct {
	Start, End int
}

// Midpoint collapses the two boundary ranges of a breakpoint into one
// (start, end) estimate by taking the midpoint of each range.
func Midpoint(b rec.Breakpoint) Span {
	return Span{
		Start: (b.Left.Start + b.Left.End) >> 1,
		End:   (b.Right.Start + b.Right.End) >> 1,
	}
}

// TooClose reports whether candidate is too close to any member of seen,
// returning the first member it is too close to.  A candidate is too close
// to a seen span when its start is within fraction*seen.Start of that
// span's start and its end is within fraction*seen.End of its end, both
// bounds inclusive.  The margins come from the seen span, not the
// candidate, so the test is asymmetric and the order of seen determines
// which spans survive; callers append accepted candidates to seen as they
// go.
//
// fraction must be in [0, 1]: 0 demands exact equality, 1 rejects almost
// anything within the magnitude of the seen values.  The range is the
// caller's responsibility.
func TooClose(candidate Span, seen []Span, fraction float64) (Span, bool) {
	for _, s := range seen {
		startMargin := fraction * float64(s.Start)
		endMargin := fraction * float64(s.End)
		if absDelta(candidate.Start, s.Start) <= startMargin &&
			absDelta(candidate.End, s.End) <= endMargin {
			return s, true
		}
	}
	return Span{}, false
}

func absDelta(a, b int) float64 {
	if a < b {
		return float64(b - a)
	}
	return float64(a - b)
}
