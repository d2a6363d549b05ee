// internal/cli/options_test.go
package cli

import (
	"errors"
	"flag"
	"io"
	"testing"
)

func newFS() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(newFS(), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func TestLDFileOK(t *testing.T) {
	o := mustParse(t,
		"--ref", "ref.tsv",
		"--ldfile", "pairs.ld.gz",
		"--savemat", "out.mat",
	)
	if o.RefFile != "ref.tsv" || o.LDFile != "pairs.ld.gz" || o.SaveMat != "out.mat" {
		t.Errorf("bad parse %+v", o)
	}
}

func TestBFileOK(t *testing.T) {
	o := mustParse(t,
		"--ref", "ref.tsv",
		"--bfile", "geno",
		"--saveltm", "out.txt.gz",
	)
	if o.BFile != "geno" || o.SaveLTM != "out.txt.gz" {
		t.Errorf("bad parse %+v", o)
	}
}

func TestDefaults(t *testing.T) {
	o := mustParse(t,
		"--ref", "ref.tsv", "--bfile", "geno", "--savedb", "out.sqlite",
	)
	if o.Plink != "plink" || o.WindowKB != 5000 || o.MinR2 != 0.1 || o.ChunkSize != 100000 {
		t.Errorf("bad defaults %+v", o)
	}
	if o.Quiet {
		t.Errorf("quiet should default to false")
	}
}

func TestErrorMissingRef(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--ldfile", "pairs.ld", "--savemat", "out.mat"})
	if err == nil {
		t.Fatalf("expected error when --ref missing")
	}
}

func TestErrorNoInput(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--ref", "ref.tsv", "--savemat", "out.mat"})
	if err == nil {
		t.Fatalf("expected error with neither --ldfile nor --bfile")
	}
}

func TestErrorNoOutput(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--ref", "ref.tsv", "--ldfile", "pairs.ld"})
	if err == nil {
		t.Fatalf("expected error when no output requested")
	}
}

func TestErrorNegativeChunkSize(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--ref", "ref.tsv", "--ldfile", "pairs.ld", "--savemat", "out.mat",
		"--chunk-size", "-1",
	})
	if err == nil {
		t.Fatalf("expected error for negative chunk size")
	}
}

func TestErrorBadWindow(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{
		"--ref", "ref.tsv", "--bfile", "geno", "--savemat", "out.mat",
		"--ld-window-kb", "0",
	})
	if err == nil {
		t.Fatalf("expected error for zero window")
	}
}

func TestErrorBadR2(t *testing.T) {
	for _, v := range []string{"-0.1", "1.5"} {
		_, err := ParseArgs(newFS(), []string{
			"--ref", "ref.tsv", "--bfile", "geno", "--savemat", "out.mat",
			"--ld-window-r2", v,
		})
		if err == nil {
			t.Fatalf("expected error for r2=%s", v)
		}
	}
}

func TestHelpRequested(t *testing.T) {
	fs := newFS()
	_, err := ParseArgs(fs, []string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("err=%v want flag.ErrHelp", err)
	}
}

func TestVersionSkipsValidation(t *testing.T) {
	o := mustParse(t, "--version")
	if !o.Version {
		t.Errorf("version flag not set")
	}
}

func TestExamplesRequested(t *testing.T) {
	_, err := ParseArgs(newFS(), []string{"--examples"})
	if !errors.Is(err, ErrExamples) {
		t.Fatalf("err=%v want ErrExamples", err)
	}
}
