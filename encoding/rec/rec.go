// Package rec contains code for parsing 3seq recombination results
// (".3s.rec") files.  The format is described in section 8 of the 3seq
// manual (http://mol.ax/content/media/2018/02/3seq_manual.20180209.pdf).
// Briefly, the file is tab-separated text: one fixed header line followed
// by one line per candidate recombinant.  The first twelve columns are
// scalar statistics for the parent/child triplet; everything after them is
// a tab-separated list of candidate breakpoint locations of the form
// "<int>-<int> & <int>-<int>".
package rec

import "errors"

// Header is the exact header line a 3seq recombination results file must
// begin with.
const Header = "P_ACCNUM\tQ_ACCNUM\tC_ACCNUM\tm\tn\tk\tp\tHS?\tlog(p)\tDS(p)\tDS(p)\tmin_rec_length\tbreakpoints"

var (
	// ErrHeader is returned when the header line is not exactly Header.
	ErrHeader = errors.New("unrecognized header line")
	// ErrFieldCount is returned when a data line has fewer than the
	// required number of tab-separated fields.
	ErrFieldCount = errors.New("insufficient fields")
	// ErrConversion is returned when a scalar field or a breakpoint offset
	// cannot be converted to its numeric type.
	ErrConversion = errors.New("malformed field")
	// ErrMarker is returned when the HS? column holds anything other than
	// "0" or "1".
	ErrMarker = errors.New("unrecognized HS marker")
	// ErrNoBreakpoints is returned when a data line carries no breakpoint
	// tokens at all.
	ErrNoBreakpoints = errors.New("no breakpoints found")
	// ErrDescendingIndices is returned when the four offsets of a
	// breakpoint token are not non-descending.
	ErrDescendingIndices = errors.New("breakpoint indices not non-descending")
)

// Range is a closed range of 1-based alignment offsets.
type Range struct {
	Start, End int
}

// Breakpoint is one candidate breakpoint location: the boundary ranges of
// its left and right side.  These are the potential breakpoints that
// minimize expression (4) in Boni et al. (2007) Genetics.
type Breakpoint struct {
	Left, Right Range
}

// Recombinant holds one candidate recombination event found by 3seq.
//
// M and N count the 'up' and 'down' steps in the random-walk view of the
// child's matches against the two parents (the p and q informative sites),
// and K is the maximum descent observed for the triplet.  P is the
// uncorrected p-value, LogP its log base 10 and DsP the Dunn-Sidak
// correction.  HS records whether the Hogan-Siegmund approximation was used
// for the triplet.  MinRecLength is the length of the shorter of the two
// recombinant segments.  Breakpoints is never empty and preserves input
// order.
type Recombinant struct {
	PID           string
	QID           string
	RecombinantID string
	M             int
	N             int
	K             int
	P             float64
	HS            bool
	LogP          float64
	DsP           float64
	MinRecLength  int
	Breakpoints   []Breakpoint
}
