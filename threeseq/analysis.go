// Package threeseq wraps the external 3seq binary.  It knows how to verify
// a precomputed p-value table, run an analysis over an alignment file in a
// private temporary directory, and locate or discard the resulting
// recombination output.  Decoding the output belongs to encoding/rec.
package threeseq

import (
	"context"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"v.io/x/lib/vlog"
)

// outputPrefix is the -id prefix passed to 3seq.  3seq derives all of its
// output file names from this prefix.
const outputPrefix = "output"

// ErrNotRun is returned when results are requested before any analysis has
// been run.
var ErrNotRun = errors.New("no analysis has been run yet")

// Executor runs external commands.  With DryRun set, commands are recorded
// in Log but not executed, which lets tests (and cautious users) see what
// would run without a 3seq binary installed.
type Executor struct {
	DryRun bool
	Log    []string
}

func (e *Executor) execute(ctx context.Context, stdin string, argv ...string) error {
	e.Log = append(e.Log, strings.Join(argv, " "))
	if e.DryRun {
		return nil
	}
	vlog.VI(1).Infof("running %v", argv)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s: %s", argv[0], strings.TrimSpace(string(out)))
	}
	return nil
}

// Analysis performs one 3seq recombination analysis.  Run leaves the 3seq
// output in a temporary directory owned by the Analysis; RecombinantFile
// and RemoveOutput fail until Run has been called.
type Analysis struct {
	pValueFile string
	tmpDir     string
	executor   *Executor
}

// New returns an Analysis that uses the precomputed p-value table at
// pValueFile (as generated by 3seq -g).
func New(pValueFile string) *Analysis {
	return &Analysis{pValueFile: pValueFile, executor: &Executor{}}
}

// NewDryRun is like New but commands are recorded, not executed.
func NewDryRun(pValueFile string) *Analysis {
	return &Analysis{pValueFile: pValueFile, executor: &Executor{DryRun: true}}
}

// Check verifies the p-value table with 3seq -check.
func (a *Analysis) Check(ctx context.Context) error {
	return a.executor.execute(ctx, "", "3seq", "-check", a.pValueFile)
}

// Run runs 3seq over the alignment file at alignmentPath, writing its
// output into a fresh temporary directory.  tValue, if nonempty, is passed
// through as the 3seq -t rejection threshold.
func (a *Analysis) Run(ctx context.Context, alignmentPath, tValue string) error {
	tmpDir, err := ioutil.TempDir("", "threeseq")
	if err != nil {
		return err
	}
	a.tmpDir = tmpDir
	argv := []string{"3seq", "-f", alignmentPath, "-id", filepath.Join(tmpDir, outputPrefix)}
	if tValue != "" {
		argv = append(argv, "-t", tValue)
	}
	// 3seq asks for confirmation before it writes output; answer yes.
	return a.executor.execute(ctx, "y\n", argv...)
}

// RecombinantFile returns the path of the main 3seq recombination output
// file, or ErrNotRun if no analysis has been run.
func (a *Analysis) RecombinantFile() (string, error) {
	if a.tmpDir == "" {
		return "", ErrNotRun
	}
	// 3seq always appends ".3s.rec" to the -id prefix.
	return filepath.Join(a.tmpDir, outputPrefix+".3s.rec"), nil
}

// RemoveOutput removes the 3seq output directory, or returns ErrNotRun if
// no analysis has been run.
func (a *Analysis) RemoveOutput() error {
	if a.tmpDir == "" {
		return ErrNotRun
	}
	return os.RemoveAll(a.tmpDir)
}

// Commands returns the command lines issued so far, one string per
// invocation.
func (a *Analysis) Commands() []string {
	return a.executor.Log
}
