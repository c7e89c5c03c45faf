package rec

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// numFields is the minimum number of tab-separated columns on a data line.
// The thirteenth column holds the breakpoint list, which may itself contain
// further tabs, so lines are only ever split into numFields groups.
const numFields = 13

var errEOF = errors.New("eof")

// Scanner provides a convenient interface for reading 3seq recombination
// results.  The Scan method decodes the next record, returning a boolean
// indicating whether the decode succeeded.  Scanners are lazy and
// forward-only: callers may stop scanning at any point without the rest of
// the input being read.  Scanners are not threadsafe.
//
// The header line is validated before the first record is produced.  All
// decoding faults are fatal: once Scan returns false it never returns true
// again, and Err reports the fault (nil at normal end of input).
type Scanner struct {
	b    *bufio.Scanner
	err  error
	line int // 1-indexed; the header is line 1.
}

// NewScanner constructs a new Scanner that reads raw 3seq recombination
// data from the provided reader.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{b: bufio.NewScanner(r)}
}

// Scan the next record into the provided Recombinant.  Scan returns a
// boolean indicating whether the scan succeeded.  Upon completion, the user
// should check the Err method to determine whether scanning stopped because
// of an error or because the end of the input was reached.
func (s *Scanner) Scan(rec *Recombinant) bool {
	if s.err != nil {
		return false
	}
	if s.line == 0 && !s.scanHeader() {
		return false
	}
	if !s.b.Scan() {
		if s.err = s.b.Err(); s.err == nil {
			s.err = errEOF
		}
		return false
	}
	s.line++
	if s.err = parseLine(s.b.Text(), s.line, rec); s.err != nil {
		return false
	}
	return true
}

// Err returns the decoding error, if any.  It should be checked after Scan
// returns false.
func (s *Scanner) Err() error {
	if s.err == errEOF {
		return nil
	}
	return s.err
}

func (s *Scanner) scanHeader() bool {
	var header string
	if s.b.Scan() {
		header = s.b.Text()
	} else if s.err = s.b.Err(); s.err != nil {
		return false
	}
	s.line = 1
	if header != Header {
		s.err = errors.Wrapf(ErrHeader, "header %q", header)
		return false
	}
	return true
}

func parseLine(line string, lineNum int, out *Recombinant) error {
	fields := strings.SplitN(line, "\t", numFields)
	if len(fields) < numFields {
		return errors.Wrapf(ErrFieldCount,
			"line %d: expected %d tab-separated fields, got %d", lineNum, numFields, len(fields))
	}
	r := Recombinant{PID: fields[0], QID: fields[1], RecombinantID: fields[2]}

	// Convert the scalar columns one by one, in column order, so that the
	// first malformed field is the one reported.
	var err error
	if r.M, err = parseInt(fields[3], "m", lineNum); err != nil {
		return err
	}
	if r.N, err = parseInt(fields[4], "n", lineNum); err != nil {
		return err
	}
	if r.K, err = parseInt(fields[5], "k", lineNum); err != nil {
		return err
	}
	if r.P, err = parseFloat(fields[6], "p", lineNum); err != nil {
		return err
	}
	switch fields[7] {
	case "0":
		r.HS = false
	case "1":
		r.HS = true
	default:
		return errors.Wrapf(ErrMarker, "line %d: HS? marker %q", lineNum, fields[7])
	}
	if r.LogP, err = parseFloat(fields[8], "log(p)", lineNum); err != nil {
		return err
	}
	// fields[9], the first of the two DS(p) columns, has no meaning defined
	// by the format.  It is carried in the file but ignored here.
	if r.DsP, err = parseFloat(fields[10], "DS(p)", lineNum); err != nil {
		return err
	}
	if r.MinRecLength, err = parseInt(fields[11], "min_rec_length", lineNum); err != nil {
		return err
	}
	if r.Breakpoints, err = parseBreakpoints(fields[12], lineNum); err != nil {
		return err
	}
	*out = r
	return nil
}

func parseInt(raw, field string, line int) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(ErrConversion,
			"line %d: field %s: %q is not a valid integer", line, field, raw)
	}
	return v, nil
}

func parseFloat(raw, field string, line int) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrConversion,
			"line %d: field %s: %q is not a valid float", line, field, raw)
	}
	return v, nil
}

// parseBreakpoints decodes the raw remainder of a data line: tab-separated
// breakpoint tokens with their offsets justified by spaces.
func parseBreakpoints(remainder string, line int) ([]Breakpoint, error) {
	var bps []Breakpoint
	for _, token := range strings.Split(remainder, "\t") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		bp, err := parseBreakpoint(token, line)
		if err != nil {
			return nil, err
		}
		bps = append(bps, bp)
	}
	if len(bps) == 0 {
		return nil, errors.Wrapf(ErrNoBreakpoints, "line %d", line)
	}
	return bps, nil
}

// parseBreakpoint decodes one "<int>-<int> & <int>-<int>" token.
func parseBreakpoint(token string, line int) (Breakpoint, error) {
	sides := strings.Split(token, "&")
	if len(sides) != 2 {
		return Breakpoint{}, errors.Wrapf(ErrConversion,
			"line %d: breakpoint %q: expected two &-separated ranges, got %d", line, token, len(sides))
	}
	left, err := parseRange(strings.TrimSpace(sides[0]), token, line)
	if err != nil {
		return Breakpoint{}, err
	}
	right, err := parseRange(strings.TrimSpace(sides[1]), token, line)
	if err != nil {
		return Breakpoint{}, err
	}
	// Sanity check: the four offsets must be non-descending.  Zero-width
	// ranges are allowed.
	if left.Start > left.End || left.End > right.Start || right.Start > right.End {
		return Breakpoint{}, errors.Wrapf(ErrDescendingIndices,
			"line %d: breakpoints (%s)", line, token)
	}
	return Breakpoint{Left: left, Right: right}, nil
}

func parseRange(s, token string, line int) (Range, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return Range{}, errors.Wrapf(ErrConversion,
			"line %d: breakpoint %q: expected two '-'-separated offsets in %q", line, token, s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, errors.Wrapf(ErrConversion,
			"line %d: breakpoint %q: %q is not a valid integer", line, token, strings.TrimSpace(parts[0]))
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, errors.Wrapf(ErrConversion,
			"line %d: breakpoint %q: %q is not a valid integer", line, token, strings.TrimSpace(parts[1]))
	}
	return Range{Start: start, End: end}, nil
}
