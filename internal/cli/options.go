// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"ldmat/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	RefFile string
	BFile   string
	LDFile  string

	// plink invocation
	Plink    string
	WindowKB int
	MinR2    float64

	// Performance
	ChunkSize int

	// Outputs
	SaveMat string
	SaveLTM string
	SaveDB  string

	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: assemble a reference-indexed LD matrix from plink pairwise output

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool
	var showExamples bool

	// Inputs
	fs.StringVar(&opt.RefFile, "ref", "", "reference variants table: TSV with CHR and BP columns, or VCF ('-' = stdin) [*]")
	fs.StringVar(&opt.BFile, "bfile", "", "plink binary genotype basename; runs plink --r2 []")
	fs.StringVar(&opt.LDFile, "ldfile", "", "pre-computed plink LD table, .ld or .ld.gz (overrides --bfile) []")

	// plink invocation
	fs.StringVar(&opt.Plink, "plink", "plink", "plink executable [plink]")
	fs.IntVar(&opt.WindowKB, "ld-window-kb", 5000, "LD window span passed to plink, in kilobases [5000]")
	fs.Float64Var(&opt.MinR2, "ld-window-r2", 0.1, "minimum r2 plink reports [0.1]")

	// Performance
	fs.IntVar(&opt.ChunkSize, "chunk-size", 100000, "pairwise rows parsed per batch (0 = whole file) [100000]")

	// Outputs
	fs.StringVar(&opt.SaveMat, "savemat", "", "write the sparse matrix as a MAT-file to this path []")
	fs.StringVar(&opt.SaveLTM, "saveltm", "", "write the lower-triangular text matrix to this path (.gz = compressed) []")
	fs.StringVar(&opt.SaveDB, "savedb", "", "write the matrix to a SQLite database at this path []")

	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress output [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if showExamples {
		return opt, ErrExamples
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	// Validation
	if opt.RefFile == "" {
		return opt, errors.New("--ref is required")
	}
	if opt.LDFile == "" && opt.BFile == "" {
		return opt, errors.New("provide --ldfile or --bfile")
	}
	if opt.SaveMat == "" && opt.SaveLTM == "" && opt.SaveDB == "" {
		return opt, errors.New("no output requested, use --savemat, --saveltm or --savedb")
	}
	if opt.ChunkSize < 0 {
		return opt, errors.New("--chunk-size must be ≥ 0")
	}
	if opt.WindowKB <= 0 {
		return opt, errors.New("--ld-window-kb must be > 0")
	}
	if opt.MinR2 < 0 || opt.MinR2 > 1 {
		return opt, errors.New("--ld-window-r2 must be between 0 and 1")
	}
	return opt, nil
}
