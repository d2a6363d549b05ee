// internal/ld/reader.go
package ld

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ldmat/internal/tabio"
)

// ErrParse marks a malformed pairwise LD table.
var ErrParse = errors.New("malformed LD table")

// Record is one pairwise correlation row as reported by the external tool.
// Endpoints are identified by (chromosome, position) only.
type Record struct {
	ChrA string
	BpA  int
	ChrB string
	BpB  int
	R2   float64
}

// Columns required in the table header. plink writes more (SNP_A, SNP_B);
// extras are ignored.
var required = []string{"CHR_A", "BP_A", "CHR_B", "BP_B", "R2"}

// StreamBatches opens the (possibly gzipped) LD table at path and emits
// records in batches of at most batchSize rows. batchSize <= 0 emits the
// whole table as a single batch. Batching bounds memory only; it never
// changes what is emitted or its order. The sequence is finite and
// non-restartable; emit returning an error stops the scan.
func StreamBatches(ctx context.Context, path string, batchSize int, emit func([]Record) error) error {
	rc, err := tabio.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	sc := tabio.NewScanner(rc)
	ln := 0
	var cols map[string]int
	maxCol := 0
	var batch []Record
	if batchSize > 0 {
		batch = make([]Record, 0, batchSize)
	}

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		out := batch
		if batchSize > 0 {
			batch = make([]Record, 0, batchSize)
		} else {
			batch = nil
		}
		return emit(out)
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if cols == nil {
			// Header row: resolve required columns by name.
			cols = make(map[string]int, len(f))
			for i, name := range f {
				cols[name] = i
			}
			for _, name := range required {
				i, ok := cols[name]
				if !ok {
					return fmt.Errorf("%s:%d: %w: header missing %s column", path, ln, ErrParse, name)
				}
				if i > maxCol {
					maxCol = i
				}
			}
			continue
		}
		if len(f) <= maxCol {
			return fmt.Errorf("%s:%d: %w: want ≥ %d fields, got %d", path, ln, ErrParse, maxCol+1, len(f))
		}
		rec, err := parseRecord(f, cols)
		if err != nil {
			return fmt.Errorf("%s:%d: %w: %v", path, ln, ErrParse, err)
		}
		batch = append(batch, rec)
		if batchSize > 0 && len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: ld scan: %w", path, err)
	}
	if cols == nil {
		return fmt.Errorf("%s: %w: empty table (no header)", path, ErrParse)
	}
	return flush()
}

func parseRecord(f []string, cols map[string]int) (Record, error) {
	var rec Record
	var err error
	rec.ChrA = f[cols["CHR_A"]]
	rec.ChrB = f[cols["CHR_B"]]
	if rec.BpA, err = strconv.Atoi(f[cols["BP_A"]]); err != nil {
		return rec, fmt.Errorf("bad BP_A %q", f[cols["BP_A"]])
	}
	if rec.BpB, err = strconv.Atoi(f[cols["BP_B"]]); err != nil {
		return rec, fmt.Errorf("bad BP_B %q", f[cols["BP_B"]])
	}
	if rec.R2, err = strconv.ParseFloat(f[cols["R2"]], 64); err != nil {
		return rec, fmt.Errorf("bad R2 %q", f[cols["R2"]])
	}
	return rec, nil
}
