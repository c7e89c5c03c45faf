package threeseq_test

import (
	"context"
	"strings"
	"testing"

	"github.com/seqtools/recomb/threeseq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecombinantFileWithNoRun(t *testing.T) {
	a := threeseq.NewDryRun("table")
	_, err := a.RecombinantFile()
	require.Error(t, err)
	assert.Equal(t, threeseq.ErrNotRun, err)
}

func TestRemoveOutputWithNoRun(t *testing.T) {
	a := threeseq.NewDryRun("table")
	err := a.RemoveOutput()
	require.Error(t, err)
	assert.Equal(t, threeseq.ErrNotRun, err)
}

func TestCheck(t *testing.T) {
	a := threeseq.NewDryRun("table")
	require.NoError(t, a.Check(context.Background()))
	require.Len(t, a.Commands(), 1)
	assert.Equal(t, "3seq -check table", a.Commands()[0])
}

func TestRun(t *testing.T) {
	a := threeseq.NewDryRun("table")
	require.NoError(t, a.Run(context.Background(), "aln.fasta", "0.05"))
	defer func() {
		require.NoError(t, a.RemoveOutput())
	}()

	require.Len(t, a.Commands(), 1)
	cmd := a.Commands()[0]
	assert.True(t, strings.HasPrefix(cmd, "3seq -f aln.fasta -id "), cmd)
	assert.True(t, strings.HasSuffix(cmd, " -t 0.05"), cmd)
	assert.Contains(t, cmd, "output")
}

func TestRunWithoutTValue(t *testing.T) {
	a := threeseq.NewDryRun("table")
	require.NoError(t, a.Run(context.Background(), "aln.fasta", ""))
	defer func() {
		require.NoError(t, a.RemoveOutput())
	}()

	require.Len(t, a.Commands(), 1)
	assert.NotContains(t, a.Commands()[0], " -t ")
}

func TestRecombinantFile(t *testing.T) {
	a := threeseq.NewDryRun("table")
	require.NoError(t, a.Run(context.Background(), "aln.fasta", ""))
	defer func() {
		require.NoError(t, a.RemoveOutput())
	}()

	path, err := a.RecombinantFile()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "output.3s.rec"), path)
	// The results file lives under the -id prefix passed to 3seq.
	assert.Contains(t, a.Commands()[0], strings.TrimSuffix(path, ".3s.rec"))
}
