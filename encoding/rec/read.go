package rec

import (
	"context"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
)

// FromPath reads every record from the recombination results file at path.
// Inputs with a gzip suffix are decompressed transparently.  The file is
// released on every exit path.  On a decoding fault no records are
// returned; use Scanner directly to consume records lazily.
func FromPath(ctx context.Context, path string) (recs []Recombinant, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		if reader, err = gzip.NewReader(reader); err != nil {
			return
		}
	}
	sc := NewScanner(reader)
	var r Recombinant
	for sc.Scan(&r) {
		recs = append(recs, r)
	}
	if err = sc.Err(); err != nil {
		recs = nil
	}
	return
}
