package progfile

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"cexport/internal/program"
)

// Decompiler serves the decompilation results recorded in a program
// database file. It satisfies the session contract of the live
// decompiler: Open before use, Close afterward.
type Decompiler struct {
	results map[*program.Function]*program.DecompileResult
	open    bool
}

var errClosed = errors.New("progfile: decompiler session not open")

// Open starts the session.
func (d *Decompiler) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.open = true
	return nil
}

// Close ends the session. Idempotent.
func (d *Decompiler) Close() error {
	d.open = false
	return nil
}

// Decompile returns the recorded result for fn. A function with no
// recorded decompilation reports a decompiler error, which the
// pipeline handles like any other per-function failure.
func (d *Decompiler) Decompile(ctx context.Context, fn *program.Function, _ time.Duration) (*program.DecompileResult, error) {
	if !d.open {
		return nil, errClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if res, ok := d.results[fn]; ok {
		return res, nil
	}
	return &program.DecompileResult{ErrorMessage: "no decompilation recorded"}, nil
}

// AnalyzeAll satisfies the analyzer capability. The database already
// holds post-analysis results, so the pre-pass is a no-op here.
func (d *Decompiler) AnalyzeAll(ctx context.Context, paramID bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Debug("analysis pre-pass recorded in database, skipping", "parameter_id", paramID)
	return nil
}
