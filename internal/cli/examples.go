// internal/cli/examples.go
package cli

import (
	"errors"
	"fmt"
	"io"
)

// ErrExamples is returned by ParseArgs when --examples is requested.
// Apps should print PrintExamples output and exit 0.
var ErrExamples = errors.New("examples requested")

// PrintExamples prints a tiny, focused quickstart for ldmat.
func PrintExamples(out io.Writer) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintln(out, "ldmat — quickstart")
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "Compute pairwise LD with plink and assemble the matrix in one go:")
	_, _ = fmt.Fprintln(out, "  ldmat \\")
	_, _ = fmt.Fprintln(out, "    --ref 2558411_ref.bim \\")
	_, _ = fmt.Fprintln(out, "    --bfile g1000_eur \\")
	_, _ = fmt.Fprintln(out, "    --ld-window-r2 0.1 \\")
	_, _ = fmt.Fprintln(out, "    --savemat ldmat_p1.mat")
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "Reuse a pairwise table plink already produced:")
	_, _ = fmt.Fprintln(out, "  ldmat \\")
	_, _ = fmt.Fprintln(out, "    --ref 2558411_ref.bim \\")
	_, _ = fmt.Fprintln(out, "    --ldfile tmp.ld.gz \\")
	_, _ = fmt.Fprintln(out, "    --saveltm ldmat.txt.gz")
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, "Tip: run with --help for all flags.")
}
