package program

import (
	"context"
	"time"
)

// DecompileResult is the outcome of one decompiler invocation.
// ErrorMessage is set when the decompiler itself reported failure; the
// remaining fields hold whatever was recovered.
type DecompileResult struct {
	ErrorMessage string
	Signature    string // prototype text, no trailing semicolon
	Body         string // full function body text, emitted verbatim
	Globals      []*Global
	Callees      []*Function
	MarkupTypes  []*Type // types annotated in the body markup (casts, inline decls)
}

// Decompiler is the host platform's decompilation capability. The
// session is a scoped resource: Open before the first call, Close on
// every exit path. Decompile honors ctx for cooperative cancellation
// and timeout as the per-call decompilation budget.
type Decompiler interface {
	Open(ctx context.Context) error
	Decompile(ctx context.Context, fn *Function, timeout time.Duration) (*DecompileResult, error)
	Close() error
}

// Analyzer is the optional auto-analysis pre-pass capability. paramID
// requests the parameter-identification analyzer, which improves
// recovered names and types but does not change export semantics.
type Analyzer interface {
	AnalyzeAll(ctx context.Context, paramID bool) error
}
