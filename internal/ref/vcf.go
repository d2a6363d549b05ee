// internal/ref/vcf.go
package ref

import (
	"fmt"

	"github.com/brentp/vcfgo"

	"ldmat/internal/tabio"
)

// loadVCF builds the index from VCF records in file order; CHROM and POS are
// the key, everything else is ignored.
func loadVCF(path string) (*Index, error) {
	rc, err := tabio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	rdr, err := vcfgo.NewReader(rc, true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrParse, err)
	}

	ix := &Index{byKey: make(map[Key]int, 1<<16)}
	for {
		variant := rdr.Read()
		if variant == nil {
			break
		}
		k := Key{Chr: NormChr(variant.Chromosome), Pos: int(variant.Pos)}
		if err := ix.add(k); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := rdr.Error(); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrParse, err)
	}
	return ix, nil
}
