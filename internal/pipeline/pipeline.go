// internal/pipeline/pipeline.go
package pipeline

import (
	"context"

	"ldmat/internal/ld"
	"ldmat/internal/ref"
	"ldmat/internal/sparse"
)

// Config tunes one Collect run.
type Config struct {
	// ChunkSize is the number of pairwise rows handed to the resolver at a
	// time. Zero or negative means the whole file in one batch.
	ChunkSize int
	// Progress, when set, is called once per consumed batch with cumulative
	// counts of scanned rows and rows kept after resolving both endpoints.
	Progress func(scanned, kept int)
}

// Stats summarizes what one Collect run did to the input stream.
type Stats struct {
	Scanned  int // pairwise rows read from the file
	Resolved int // rows with both endpoints present in the reference
	Dropped  int // rows discarded because an endpoint was absent
	Dups     int // resolved rows removed as repeated (row, col) pairs
}

// Collect streams the pairwise file at path in ChunkSize batches, resolves
// both endpoints of every row against ix, and folds the survivors into a
// triplet collection. Rows with an endpoint absent from the reference are
// dropped, not errors. Repeated (row, col) pairs keep the first occurrence.
// The result is invariant to ChunkSize.
func Collect(ctx context.Context, path string, ix *ref.Index, cfg Config) (*sparse.Collection, Stats, error) {
	var (
		acc   sparse.Collection
		stats Stats
	)
	err := ld.StreamBatches(ctx, path, cfg.ChunkSize, func(recs []ld.Record) error {
		for _, r := range recs {
			stats.Scanned++
			row, ok := ix.Lookup(r.ChrA, r.BpA)
			if !ok {
				stats.Dropped++
				continue
			}
			col, ok := ix.Lookup(r.ChrB, r.BpB)
			if !ok {
				stats.Dropped++
				continue
			}
			stats.Resolved++
			acc.Add(sparse.Triplet{Row: row, Col: col, Val: r.R2})
		}
		if cfg.Progress != nil {
			cfg.Progress(stats.Scanned, stats.Resolved)
		}
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	stats.Dups = acc.Dedup()
	return &acc, stats, nil
}
