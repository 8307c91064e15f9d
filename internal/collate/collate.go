package collate

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"cexport/internal/program"
)

// Input is one artifact's contribution to collation: the function's
// own rendered signature plus the references extracted from its body.
type Input struct {
	Fn        *program.Function
	Signature string
	Globals   []*program.Global
	Callees   []*program.Function
}

// Edge records one discovered caller→callee relation, by name.
type Edge struct {
	Caller string
	Callee string
}

// Result holds the collated declaration groups and call graph edges.
type Result struct {
	FuncDecls   *DeclSet
	GlobalDecls *DeclSet
	Edges       []Edge
	// Emitted is every function contributing to the output: the
	// exported functions plus all referenced callees. Type closure
	// seeding draws return and parameter types from it, so callees
	// appear here even when declaration emission is off.
	Emitted []*program.Function
}

// Collator builds the declaration groups from collected artifacts.
type Collator struct {
	Prog          *program.Program
	Res           *Resolver
	EmitGlobals   bool
	EmitFuncDecls bool
}

// Run collates declarations for the given inputs. Callee declarations
// cover the transitive call closure: a callee's own callees are
// discovered through the resolver and chased with an explicit
// worklist, deduplicated by function identity (a thunk and its target
// stay distinct).
func (c *Collator) Run(ctx context.Context, inputs []Input) (*Result, error) {
	res := &Result{
		FuncDecls:   NewDeclSet(),
		GlobalDecls: NewDeclSet(),
	}

	// declared marks functions that have, or are queued to get, a
	// declaration entry. A selected function whose decompilation
	// failed stays undeclared after the input pass, so a reference
	// from another input still forces resolution into a signature or
	// a visible placeholder instead of vanishing.
	declared := make(map[*program.Function]bool)
	emitted := make(map[*program.Function]bool)

	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !emitted[in.Fn] {
			emitted[in.Fn] = true
			res.Emitted = append(res.Emitted, in.Fn)
		}
		if c.EmitFuncDecls && in.Signature != "" {
			res.FuncDecls.Add(in.Signature)
			declared[in.Fn] = true
		}
		if c.EmitGlobals {
			c.collectGlobals(ctx, in.Globals, res)
		}
	}

	var work []*program.Function
	for _, in := range inputs {
		for _, callee := range in.Callees {
			res.Edges = append(res.Edges, Edge{Caller: in.Fn.Name, Callee: callee.Name})
			if declared[callee] {
				continue
			}
			declared[callee] = true
			if c.EmitFuncDecls {
				work = append(work, callee)
			} else if !emitted[callee] {
				// No declarations requested, but the callee's
				// return and parameter types still seed the
				// closure.
				emitted[callee] = true
				res.Emitted = append(res.Emitted, callee)
			}
		}
	}

	for len(work) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fn := work[0]
		work = work[1:]
		if !emitted[fn] {
			emitted[fn] = true
			res.Emitted = append(res.Emitted, fn)
		}

		sig, ok := c.Res.Signature(ctx, fn)
		if ok {
			res.FuncDecls.Add(sig)
		} else {
			name := effectiveName(fn)
			res.FuncDecls.Add(fmt.Sprintf("/* WARNING: Could not decompile function %s */", name))
			log.Warn("unresolved callee signature", "func", name, "addr", fn.Entry)
		}

		for _, callee := range c.Res.Callees(ctx, fn) {
			res.Edges = append(res.Edges, Edge{Caller: fn.Name, Callee: callee.Name})
			if !declared[callee] {
				declared[callee] = true
				work = append(work, callee)
			}
		}
	}
	return res, nil
}

// collectGlobals renders declarations for the globals referenced by
// one artifact. Function symbols resolve through the callee path and
// contribute a prototype to the function-declaration group.
func (c *Collator) collectGlobals(ctx context.Context, globals []*program.Global, res *Result) {
	for _, g := range globals {
		if g.Type == nil && !g.FunctionSymbol {
			res.GlobalDecls.Add(fmt.Sprintf("/* WARNING: Missing type for global %s */", g.Name))
			log.Warn("global has no type", "global", g.Name, "addr", g.Addr)
			continue
		}
		if g.FunctionSymbol {
			fn := c.Prog.FunctionAt(g.Addr)
			if fn == nil {
				res.GlobalDecls.Add(fmt.Sprintf("/* WARNING: Could not resolve function symbol %s */", g.Name))
				log.Warn("function-pointer global has no function", "global", g.Name, "addr", g.Addr)
				continue
			}
			if sig, ok := c.Res.Signature(ctx, fn); ok {
				log.Debug("global resolved as function prototype", "global", g.Name, "func", fn.Name)
				res.FuncDecls.Add(sig)
				continue
			}
			// Resolution failed; fall through to a plain variable
			// declaration so the symbol still shows up.
		}
		if g.Type == nil {
			res.GlobalDecls.Add(fmt.Sprintf("/* WARNING: Missing type for global %s */", g.Name))
			continue
		}
		res.GlobalDecls.Add(RenderGlobal(g))
	}
}

// RenderGlobal renders a global variable declaration. Array dimensions
// in the type's display text are relocated after the variable name
// ("int buf[4];"), and pointer display text keeps the name attached to
// the star without an extra space.
func RenderGlobal(g *program.Global) string {
	display := g.Type.Display()
	if i := strings.Index(display, "["); i >= 0 && strings.Contains(display[i:], "]") {
		base := display[:i]
		dims := display[i:]
		space := " "
		if strings.HasSuffix(base, "*") {
			space = ""
		}
		return base + space + g.Name + dims + ";"
	}
	space := " "
	if strings.HasSuffix(display, "*") || strings.HasSuffix(display, "]") || g.Type.Kind == program.FuncDef {
		space = ""
	}
	return display + space + g.Name + ";"
}

func effectiveName(fn *program.Function) string {
	if fn.ThunkTarget != nil {
		return fn.ThunkTarget.Name
	}
	return fn.Name
}
