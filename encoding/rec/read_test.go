package rec_test

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/seqtools/recomb/encoding/rec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPath(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	input := rec.Header + "\n" + dataLine(validScalars, "1-3 & 4-6") + "\n"
	path := filepath.Join(tempDir, "output.3s.rec")
	require.NoError(t, ioutil.WriteFile(path, []byte(input), 0644))

	recs, err := rec.FromPath(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "id3", recs[0].RecombinantID)
	assert.Equal(t, []rec.Breakpoint{
		{Left: rec.Range{Start: 1, End: 3}, Right: rec.Range{Start: 4, End: 6}},
	}, recs[0].Breakpoints)
}

func TestFromPathGzip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	input := rec.Header + "\n" + dataLine(validScalars, "1-3 & 4-6") + "\n"
	path := filepath.Join(tempDir, "output.3s.rec.gz")
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(input))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, ioutil.WriteFile(path, buf.Bytes(), 0644))

	recs, err := rec.FromPath(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "id1", recs[0].PID)
}

func TestFromPathParseError(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	path := filepath.Join(tempDir, "output.3s.rec")
	require.NoError(t, ioutil.WriteFile(path, []byte("bad header\n"), 0644))

	recs, err := rec.FromPath(context.Background(), path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rec.ErrHeader))
	assert.Nil(t, recs)
}

func TestFromPathMissingFile(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	_, err := rec.FromPath(context.Background(), filepath.Join(tempDir, "nonexistent.3s.rec"))
	require.Error(t, err)
}
