// internal/ref/ref.go
package ref

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ldmat/internal/tabio"
)

var (
	// ErrDuplicateKey marks a reference table whose (CHR, BP) pairs are not
	// unique; the position→index mapping would be ambiguous.
	ErrDuplicateKey = errors.New("duplicated CHR:BP pair")
	// ErrParse marks a malformed reference table.
	ErrParse = errors.New("malformed reference table")
)

// Key identifies a variant by chromosome token and base-pair position.
type Key struct {
	Chr string
	Pos int
}

// Index maps (chromosome, position) keys to their dense row index in the
// reference table. Immutable after Load.
type Index struct {
	n     int
	byKey map[Key]int
}

// N returns the number of variants in the reference.
func (ix *Index) N() int { return ix.n }

// Lookup resolves a key to its row index. Absence is not an error: the LD
// window commonly spans variants outside the reference set.
func (ix *Index) Lookup(chr string, pos int) (int, bool) {
	id, ok := ix.byKey[Key{Chr: NormChr(chr), Pos: pos}]
	return id, ok
}

// NormChr canonicalizes a chromosome token so that numeric spellings from
// different producers compare equal ("01" == "1"); non-numeric tokens such
// as "X" pass through trimmed.
func NormChr(tok string) string {
	tok = strings.TrimSpace(tok)
	if v, err := strconv.Atoi(tok); err == nil {
		return strconv.Itoa(v)
	}
	return tok
}

// Load reads the ordered variant reference and builds the index. Files
// suffixed .vcf or .vcf.gz are read as VCF; anything else is read as a
// whitespace-delimited table with CHR and BP header columns. Row order
// defines the dense index (0-based).
func Load(path string) (*Index, error) {
	if strings.HasSuffix(path, ".vcf") || strings.HasSuffix(path, ".vcf.gz") {
		return loadVCF(path)
	}
	return loadTable(path)
}

func loadTable(path string) (*Index, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	ix := &Index{byKey: make(map[Key]int, 1<<16)}
	sc := tabio.NewScanner(rc)
	ln := 0
	chrCol, bpCol := -1, -1
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if chrCol < 0 {
			// Header row: locate CHR and BP by name.
			for i, name := range f {
				switch name {
				case "CHR":
					chrCol = i
				case "BP":
					bpCol = i
				}
			}
			if chrCol < 0 || bpCol < 0 {
				return nil, fmt.Errorf("%s:%d: %w: header must name CHR and BP columns", path, ln, ErrParse)
			}
			continue
		}
		if len(f) <= chrCol || len(f) <= bpCol {
			return nil, fmt.Errorf("%s:%d: %w: want ≥ %d fields, got %d", path, ln, ErrParse, max(chrCol, bpCol)+1, len(f))
		}
		pos, err := strconv.Atoi(f[bpCol])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w: bad BP %q", path, ln, ErrParse, f[bpCol])
		}
		if err := ix.add(Key{Chr: NormChr(f[chrCol]), Pos: pos}); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, ln, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: reference scan: %w", path, err)
	}
	return ix, nil
}

func (ix *Index) add(k Key) error {
	if prev, dup := ix.byKey[k]; dup {
		return fmt.Errorf("%w: %s:%d already at index %d", ErrDuplicateKey, k.Chr, k.Pos, prev)
	}
	ix.byKey[k] = ix.n
	ix.n++
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
