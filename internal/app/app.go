// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"ldmat/internal/cli"
	"ldmat/internal/cmdutil"
	"ldmat/internal/ldstore"
	"ldmat/internal/ltm"
	"ldmat/internal/matfile"
	"ldmat/internal/pipeline"
	"ldmat/internal/plink"
	"ldmat/internal/ref"
	"ldmat/internal/version"
)

// matRecipe mirrors the follow-up steps users run on the exported file.
const matRecipe = `
The results are saved into %s. Now you should open matlab and execute the following commands to re-save the result as matlab sparse matrix:
    load %s
    LDmat = sparse(double(id1),double(id2),true,double(nsnp),double(nsnp));
    LDmat = LDmat | speye(double(nsnp));
    LDmat = LDmat | (LDmat - LDmat');
    save('LDmat.mat', 'LDmat', '-v7.3')
`

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("ldmat")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"-h"})
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); cmdutil.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, cli.ErrExamples) {
			cli.PrintExamples(outw)
			if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
				return 0
			} else if e != nil {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "ldmat version %s\n", version.Version)
		if e := outw.Flush(); cmdutil.IsBrokenPipe(e) {
			return 0
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	cyan := color.New(color.FgCyan).SprintFunc()
	say := func(format string, a ...any) {
		if opts.Quiet {
			return
		}
		_, _ = fmt.Fprintf(outw, format, a...)
		_ = outw.Flush()
	}

	say("Reading %s...\n", cyan(opts.RefFile))
	ix, err := ref.Load(opts.RefFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	nsnp := ix.N()

	ldPath := opts.LDFile
	if ldPath == "" {
		popts := plink.Options{
			Exe:      opts.Plink,
			BFile:    opts.BFile,
			WindowKB: opts.WindowKB,
			MinR2:    opts.MinR2,
		}
		say("Execute command: %s\n", plink.CommandLine(popts))
		var spin *spinner.Spinner
		if !opts.Quiet {
			spin = spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(stderr))
			spin.Prefix = "running plink   "
			spin.Start()
		}
		path, toolOut, perr := plink.ComputeLD(parent, popts)
		if spin != nil {
			spin.Stop()
		}
		if perr != nil {
			if errors.Is(perr, context.Canceled) || errors.Is(parent.Err(), context.Canceled) {
				return 130
			}
			_, _ = fmt.Fprintln(stderr, perr)
			return 3
		}
		if out := strings.TrimRight(toolOut, "\n"); out != "" {
			say("%s\n", out)
		}
		ldPath = path
	} else if opts.BFile != "" {
		cmdutil.Warnf(stderr, opts.Quiet, "--ldfile takes priority, ignoring --bfile %s", opts.BFile)
	}

	say("Parsing %s...\n", cyan(ldPath))
	acc, stats, err := pipeline.Collect(parent, ldPath, ix, pipeline.Config{
		ChunkSize: opts.ChunkSize,
		Progress: func(scanned, kept int) {
			say("\rFinish %d entries (%d after joining with ref)", scanned, kept)
		},
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		say("\n")
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	say(". Done.\n")

	say("Detecting duplicated entries...\n")
	say("Drop %d duplicated entries\n", stats.Dups)

	trips := acc.Triplets()

	if opts.SaveLTM != "" {
		say("Save result as lower diagonal matrix to %s...\n", cyan(opts.SaveLTM))
		if err := ltm.WriteFile(opts.SaveLTM, nsnp, trips); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	if opts.SaveMat != "" {
		say("Save result in matlab format to %s...\n", cyan(opts.SaveMat))
		id1 := make([]int32, len(trips))
		id2 := make([]int32, len(trips))
		val := make([]float64, len(trips))
		for i, t := range trips {
			id1[i] = int32(t.Row + 1)
			id2[i] = int32(t.Col + 1)
			val[i] = t.Val
		}
		err := matfile.WriteFile(opts.SaveMat,
			matfile.IntColumn("id1", id1),
			matfile.IntColumn("id2", id2),
			matfile.Column("val", val),
			matfile.IntColumn("nsnp", []int32{int32(nsnp)}),
		)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		say(matRecipe+"\n", opts.SaveMat, opts.SaveMat)
	}

	if opts.SaveDB != "" {
		say("Save result to database %s...\n", cyan(opts.SaveDB))
		if err := ldstore.SaveFile(parent, opts.SaveDB, nsnp, trips); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	say("Done.\n")

	if err := outw.Flush(); cmdutil.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
