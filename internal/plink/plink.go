// internal/plink/plink.go
package plink

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Options parameterizes one plink --r2 invocation. The window/threshold
// knobs are prefilters applied inside plink; they never alter how ldmat
// interprets the rows that come back.
type Options struct {
	Exe       string  // plink executable; "plink" when empty
	BFile     string  // binary genotype trio basename (.bed/.bim/.fam)
	WindowKB  int     // --ld-window-kb
	MinR2     float64 // --ld-window-r2
	OutPrefix string  // --out; "tmp" when empty
}

// ToolError reports a failed or fruitless external invocation, carrying the
// exact command line and the tool's combined stdout/stderr for diagnosis.
type ToolError struct {
	Cmd    string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("plink invocation failed: %s: %v", e.Cmd, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }

func (o Options) withDefaults() Options {
	if o.Exe == "" {
		o.Exe = "plink"
	}
	if o.OutPrefix == "" {
		o.OutPrefix = "tmp"
	}
	return o
}

func (o Options) args() []string {
	return []string{
		"--bfile", o.BFile,
		"--r2", "gz",
		"--ld-window-kb", strconv.Itoa(o.WindowKB),
		"--ld-window", "999999",
		"--ld-window-r2", strconv.FormatFloat(o.MinR2, 'g', -1, 64),
		"--out", o.OutPrefix,
	}
}

// CommandLine renders the invocation for progress reporting.
func CommandLine(o Options) string {
	o = o.withDefaults()
	return o.Exe + " " + strings.Join(o.args(), " ")
}

// ComputeLD runs plink to produce the gzipped pairwise table and returns its
// path along with the tool's combined output. The run is synchronous; the
// output file is read only after plink exits. A non-zero exit or a missing
// output file yields a *ToolError.
func ComputeLD(ctx context.Context, o Options) (path string, output string, err error) {
	o = o.withDefaults()
	cmd := exec.CommandContext(ctx, o.Exe, o.args()...)
	out, runErr := cmd.CombinedOutput()
	output = string(out)
	if runErr != nil {
		return "", output, &ToolError{Cmd: CommandLine(o), Output: output, Err: runErr}
	}
	path = o.OutPrefix + ".ld.gz"
	if _, statErr := os.Stat(path); statErr != nil {
		return "", output, &ToolError{Cmd: CommandLine(o), Output: output, Err: fmt.Errorf("produced no output file %s: %v", path, statErr)}
	}
	return path, output, nil
}
