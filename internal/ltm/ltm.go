// internal/ltm/ltm.go
package ltm

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"

	"ldmat/internal/sparse"
)

type cell struct{ i, j int }

// Write renders the nsnp x nsnp matrix as lower-triangular text: line i
// holds i values for columns 0..i-1 followed by the 1.0 diagonal, all
// tab-separated. Pairs must satisfy row < col; nothing is written when
// they do not.
func Write(w io.Writer, nsnp int, trips []sparse.Triplet) error {
	if err := sparse.VerifyPairOrder(trips); err != nil {
		return err
	}
	return render(w, nsnp, trips)
}

// WriteFile writes the lower-triangular text to path. A .gz suffix
// selects bgzf compression. The pair-order check runs before the file
// is created, so a violation leaves no partial output behind.
func WriteFile(path string, nsnp int, trips []sparse.Triplet) error {
	if err := sparse.VerifyPairOrder(trips); err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, ".gz") {
		zw, err := bgzf.NewWriterLevel(fh, gzip.BestCompression, 1)
		if err != nil {
			fh.Close()
			return err
		}
		if err := render(zw, nsnp, trips); err != nil {
			zw.Close()
			fh.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			fh.Close()
			return err
		}
		return fh.Close()
	}
	if err := render(fh, nsnp, trips); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// render walks the triangle row-major. A triplet (r, c, v) with r < c
// prints at line c, position r; cells no triplet covers print as 0.
func render(w io.Writer, nsnp int, trips []sparse.Triplet) error {
	byCell := make(map[cell]float64, len(trips))
	for _, t := range trips {
		byCell[cell{t.Col, t.Row}] = t.Val
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < nsnp; i++ {
		for j := 0; j < i; j++ {
			if v, ok := byCell[cell{i, j}]; ok {
				bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				bw.WriteByte('0')
			}
			bw.WriteByte('\t')
		}
		bw.WriteString("1.0\n")
	}
	return bw.Flush()
}
