package main

// rec-report prints a plain-text summary of a 3seq recombination analysis:
// each candidate recombinant with its parents and breakpoints, followed by
// a per-parent-pair summary.  It either runs 3seq over an alignment file or
// reports on an existing .3s.rec results file.
//
// Example 1: run 3seq and report.
//
//    rec-report -alignment-file aln.fasta -p-value-file PVT.3SEQ.2017.700
//
// Example 2: report on a results file from an earlier run.
//
//    rec-report -rec-file output.3s.rec

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/seqtools/recomb/breakpoint"
	"github.com/seqtools/recomb/encoding/rec"
	"github.com/seqtools/recomb/threeseq"
)

// Collection of options set via cmdline flags.
type reportFlags struct {
	alignmentFile string
	pValueFile    string
	recFile       string
	tValue        string
	keep          bool
	similarity    float64
}

type parentPair struct {
	p, q string
}

// sortedPair normalizes a parent pair so that (a, b) and (b, a) group
// together.
func sortedPair(p, q string) parentPair {
	if q < p {
		p, q = q, p
	}
	return parentPair{p: p, q: q}
}

type childKey struct {
	parents parentPair
	child   string
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// report prints each recombinant with its breakpoints, suppressing
// breakpoints whose midpoint span is too close to one already printed for
// the same recombinant, then a summary grouped by parent pair.
func report(w io.Writer, recs []rec.Recombinant, similarity float64) {
	seen := make(map[childKey]bool)
	parentRecs := make(map[parentPair][]rec.Recombinant)
	var pairOrder []parentPair

	for i, r := range recs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s may be a recombinant of %s and %s.\n", r.RecombinantID, r.PID, r.QID)
		parents := sortedPair(r.PID, r.QID)
		key := childKey{parents: parents, child: r.RecombinantID}
		if seen[key] {
			fmt.Fprintln(w, "  ALREADY SEEN!")
		} else {
			seen[key] = true
		}
		if _, ok := parentRecs[parents]; !ok {
			pairOrder = append(pairOrder, parents)
		}
		parentRecs[parents] = append(parentRecs[parents], r)

		var printed []breakpoint.Span
		for j, bp := range r.Breakpoints {
			span := breakpoint.Midpoint(bp)
			fmt.Fprintf(w, "  Breakpoint %d: %d-%d & %d-%d (using start %d end %d)\n",
				j+1, bp.Left.Start, bp.Left.End, bp.Right.Start, bp.Right.End,
				span.Start, span.End)
			if prev, ok := breakpoint.TooClose(span, printed, similarity); ok {
				fmt.Fprintf(w, "    Not printing (too close to previous breakpoint (%d, %d)).\n",
					prev.Start, prev.End)
				continue
			}
			printed = append(printed, span)
		}
	}

	fmt.Fprintf(w, "%d potential recombinant%s found.\n", len(recs), plural(len(recs)))
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(w, "Summary of %d parent pair%s:\n", len(pairOrder), plural(len(pairOrder)))
	for _, parents := range pairOrder {
		rs := parentRecs[parents]
		fmt.Fprintf(w, "%d possible recombinant%s from parents: %s and %s\n",
			len(rs), plural(len(rs)), parents.p, parents.q)
		for _, r := range rs {
			fmt.Fprintf(w, "  Child %s\n", r.RecombinantID)
			for _, bp := range r.Breakpoints {
				fmt.Fprintf(w, "    %d-%d & %d-%d\n",
					bp.Left.Start, bp.Left.End, bp.Right.Start, bp.Right.End)
			}
		}
	}
}

func runAnalysis(ctx context.Context, flags reportFlags) []rec.Recombinant {
	a := threeseq.New(flags.pValueFile)
	log.Printf("Starting 3seq analysis...")
	if err := a.Run(ctx, flags.alignmentFile, flags.tValue); err != nil {
		log.Fatalf("3seq run: %v", err)
	}
	log.Printf("Done.")
	path, err := a.RecombinantFile()
	if err != nil {
		log.Fatal(err)
	}
	recs, err := rec.FromPath(ctx, path)
	if err != nil {
		log.Fatalf("read %s: %v", path, err)
	}
	if flags.keep {
		fmt.Printf("Analysis recombinant file saved to %s\n", path)
	} else if err := a.RemoveOutput(); err != nil {
		log.Error.Printf("remove 3seq output: %v", err)
	}
	return recs
}

func main() {
	flags := reportFlags{}
	flag.StringVar(&flags.alignmentFile, "alignment-file", "", "The FASTA or Phylip alignment file to analyze.")
	flag.StringVar(&flags.pValueFile, "p-value-file", "", "The 3seq p-value lookup table file.")
	flag.StringVar(&flags.recFile, "rec-file", "", "An existing 3seq recombinant file to report on. If set, 3seq is not run.")
	flag.StringVar(&flags.tValue, "t", "0.05", "The -t value to pass to 3seq.")
	flag.BoolVar(&flags.keep, "keep", false, "Do not remove the 3seq output. Instead print its path.")
	flag.Float64Var(&flags.similarity, "breakpoint-similarity-threshold", 0.95,
		`If both offsets of a breakpoint pair are not sufficiently different
from previously printed breakpoints, the breakpoint will not be printed.
This [0..1] value controls how numerically close breakpoints must be to be
considered too close.`)

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	var recs []rec.Recombinant
	var err error
	if flags.recFile != "" {
		if recs, err = rec.FromPath(ctx, flags.recFile); err != nil {
			log.Fatalf("read %s: %v", flags.recFile, err)
		}
	} else {
		if flags.alignmentFile == "" || flags.pValueFile == "" {
			log.Fatal("either -rec-file or both -alignment-file and -p-value-file are required")
		}
		recs = runAnalysis(ctx, flags)
	}
	report(os.Stdout, recs, flags.similarity)
}
