package lines

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dshills/szkit/internal/sz"
)

// Stats summarizes a Run.
type Stats struct {
	Read    int64
	Kept    int64
	Dropped int64
}

// Run reads records from r, applies chain to each and writes the kept ones
// to w. It stops at end of input, on the first error, or when ctx is done.
func Run(ctx context.Context, r io.Reader, w io.Writer, chain Chain, opts Options) (Stats, error) {
	opts.defaults()

	var stats Stats
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	for {
		if err := ctx.Err(); err != nil {
			_ = bw.Flush()
			return stats, err
		}

		line, err := opts.Store.ReadDelim(br, sz.Str(opts.Delims))
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			_ = bw.Flush()
			return stats, fmt.Errorf("read record %d: %w", stats.Read+1, err)
		}
		stats.Read++

		keep, err := chain.Apply(line)
		if err == nil && keep {
			err = opts.Emit(bw, line)
			if err == nil {
				_, err = bw.Write(opts.Separator)
			}
		}
		line.Free()
		if err != nil {
			_ = bw.Flush()
			return stats, fmt.Errorf("record %d: %w", stats.Read, err)
		}
		if keep {
			stats.Kept++
		} else {
			stats.Dropped++
		}
	}
	return stats, bw.Flush()
}
