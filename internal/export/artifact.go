package export

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"cexport/internal/program"
)

// Artifact is the decompilation output and extracted cross-references
// for one exported function. Immutable once collected.
type Artifact struct {
	Fn        *program.Function
	Signature string // prototype with trailing semicolon; empty for failure artifacts
	Body      string
	Globals   []*program.Global
	Callees   []*program.Function
	Types     []*program.Type // body markup types (casts, inline declarations)
}

// Collect decompiles each selected function serially and accumulates
// artifacts. Cancellation is checked between functions. Decompiler
// failures either drop the function or, when failure comments are
// enabled, keep a comment-only artifact so call sites still resolve a
// declaration.
func Collect(ctx context.Context, dec program.Decompiler, funcs []*program.Function, cfg *Config) ([]*Artifact, error) {
	var arts []*Artifact
	for _, fn := range funcs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a := collectOne(ctx, dec, fn, cfg)
		if a != nil {
			arts = append(arts, a)
		}
	}
	// Arrival order is already address order, but the output contract
	// is on the explicit sort key, not on insertion order.
	sort.Slice(arts, func(i, j int) bool { return arts[i].Fn.Entry < arts[j].Fn.Entry })
	return arts, nil
}

func collectOne(ctx context.Context, dec program.Decompiler, fn *program.Function, cfg *Config) *Artifact {
	res, err := dec.Decompile(ctx, fn, cfg.Timeout)
	if err != nil {
		log.Error("decompile failed", "func", fn.Name, "addr", fn.Entry, "err", err)
		return nil
	}
	if res.ErrorMessage != "" {
		log.Error("decompiler error", "func", fn.Name, "addr", fn.Entry, "msg", res.ErrorMessage)
		if cfg.FailureComments {
			body := fmt.Sprintf("/*\nUnable to decompile '%s'\nCause: %s\n*/\n", fn.Name, res.ErrorMessage)
			return &Artifact{Fn: fn, Body: body}
		}
		return nil
	}
	if res.Signature == "" && res.Body == "" {
		// A result with no usable content degrades to the raw
		// prototype so the function still appears in the output.
		log.Warn("empty decompilation, falling back to prototype", "func", fn.Name, "addr", fn.Entry)
		return &Artifact{
			Fn:        fn,
			Signature: fn.Prototype + ";",
			Body:      fmt.Sprintf("/* Could not decompile %s */\n", fn.Name),
		}
	}

	sig := res.Signature
	if sig != "" {
		sig = ensureSemicolon(sig)
	}
	return &Artifact{
		Fn:        fn,
		Signature: sig,
		Body:      res.Body,
		Globals:   res.Globals,
		Callees:   res.Callees,
		Types:     res.MarkupTypes,
	}
}

func ensureSemicolon(sig string) string {
	if len(sig) == 0 || sig[len(sig)-1] == ';' {
		return sig
	}
	return sig + ";"
}
