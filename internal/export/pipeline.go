package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/zboralski/lattice"

	"cexport/internal/assemble"
	"cexport/internal/callgraph"
	"cexport/internal/collate"
	"cexport/internal/output"
	"cexport/internal/program"
	"cexport/internal/typeclose"
)

// Summary reports what one run produced.
type Summary struct {
	Paths     []string
	Functions int // exported functions (artifacts)
	FuncDecls int
	Globals   int
	Types     int
	Graph     *lattice.Graph
}

// Select enumerates candidate functions from the configured address
// ranges and applies the tag and name filters. Range parse errors
// degrade to the full address space with a warning.
func Select(prog *program.Program, cfg *Config) []*program.Function {
	var ranges []program.AddressRange
	if cfg.AddressFilter != "" {
		var warns []string
		ranges, warns = program.ParseRanges(cfg.AddressFilter)
		for _, w := range warns {
			log.Warn("address filter", "problem", w)
		}
		if len(ranges) == 0 {
			log.Warn("address filter empty after parsing, using full memory range", "filter", cfg.AddressFilter)
		}
	}

	cands := prog.FunctionsIn(ranges)
	f := NewFilter(cfg, prog)
	var out []*program.Function
	for _, fn := range cands {
		if f.Include(fn) {
			out = append(out, fn)
		}
	}
	log.Info("functions selected", "candidates", len(cands), "selected", len(out))
	return out
}

// Run executes the full export pipeline: select, decompile, collate,
// close types, assemble, write. The decompiler session is opened once
// and closed on every exit path.
func Run(ctx context.Context, prog *program.Program, dec program.Decompiler, an program.Analyzer, cfg *Config) (*Summary, error) {
	if !cfg.EmitC && !cfg.EmitHeader {
		return nil, errors.New("export: no output files selected")
	}
	base := cfg.BaseName
	if base == "" {
		base = prog.Name
	}

	if an != nil {
		log.Info("running auto-analysis", "parameter_id", cfg.RunParameterID)
		if err := an.AnalyzeAll(ctx, cfg.RunParameterID); err != nil {
			return nil, fmt.Errorf("export: auto-analysis: %w", err)
		}
	}

	if err := dec.Open(ctx); err != nil {
		return nil, fmt.Errorf("export: open decompiler: %w", err)
	}
	defer dec.Close()

	funcs := Select(prog, cfg)
	if len(funcs) == 0 {
		return nil, errors.New("export: no functions passed filtering")
	}

	arts, err := Collect(ctx, dec, funcs, cfg)
	if err != nil {
		return nil, err
	}
	if len(arts) == 0 {
		return nil, errors.New("export: no functions decompiled")
	}

	res, err := Collate(ctx, prog, dec, cfg, arts)
	if err != nil {
		return nil, err
	}

	var typesText, builtins string
	var closed []*program.Type
	if cfg.EmitTypes {
		if cfg.Scoped() {
			closed = typeclose.Close(SeedTypes(arts, res.Emitted, cfg.EmitGlobals))
			log.Debug("type closure computed", "seeds", len(res.Emitted), "closed", len(closed))
		} else {
			// Unscoped export ships the whole type database and
			// skips closure computation.
			closed = prog.Types
		}
		typesText = assemble.RenderTypes(closed)
		builtins = assemble.BuiltinTypedefs()
	}

	var bodies []string
	for _, a := range arts {
		if a.Body != "" {
			bodies = append(bodies, a.Body)
		}
	}

	content := assemble.Content{
		Builtins:  builtins,
		Types:     typesText,
		FuncDecls: res.FuncDecls.Sorted(),
		Globals:   res.GlobalDecls.Sorted(),
		Bodies:    bodies,
	}
	if cfg.EmitTypes {
		content.Equates = prog.Equates
	}

	header, impl := assemble.Build(content, cfg.Comments, cfg.EmitHeader, cfg.EmitC, base+".h")
	paths, err := output.WriteUnits(cfg.OutputDir, base, header, impl)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		log.Info("wrote output unit", "path", p)
	}

	return &Summary{
		Paths:     paths,
		Functions: len(arts),
		FuncDecls: res.FuncDecls.Len(),
		Globals:   res.GlobalDecls.Len(),
		Types:     len(closed),
		Graph:     BuildGraph(res),
	}, nil
}

// Collate resolves declarations for the collected artifacts, chasing
// the transitive callee closure.
func Collate(ctx context.Context, prog *program.Program, dec program.Decompiler, cfg *Config, arts []*Artifact) (*collate.Result, error) {
	c := &collate.Collator{
		Prog:          prog,
		Res:           collate.NewResolver(dec, cfg.Timeout),
		EmitGlobals:   cfg.EmitGlobals,
		EmitFuncDecls: cfg.EmitFuncDecls,
	}
	inputs := make([]collate.Input, len(arts))
	for i, a := range arts {
		inputs[i] = collate.Input{
			Fn:        a.Fn,
			Signature: a.Signature,
			Globals:   a.Globals,
			Callees:   a.Callees,
		}
	}
	return c.Run(ctx, inputs)
}

// BuildGraph converts the collator's discovered edges into a call
// graph.
func BuildGraph(res *collate.Result) *lattice.Graph {
	byCaller := make(map[string][]string)
	var order []string
	for _, e := range res.Edges {
		if _, seen := byCaller[e.Caller]; !seen {
			order = append(order, e.Caller)
		}
		byCaller[e.Caller] = append(byCaller[e.Caller], e.Callee)
	}
	funcs := make([]callgraph.FuncCalls, 0, len(order))
	for _, name := range order {
		funcs = append(funcs, callgraph.FuncCalls{Name: name, Callees: byCaller[name]})
	}
	return callgraph.Build(funcs)
}

// SeedTypes gathers the directly used types for closure computation:
// return and parameter types of every emitted function (selected plus
// resolved callees), body markup types, and referenced global types
// when globals are emitted.
func SeedTypes(arts []*Artifact, emitted []*program.Function, emitGlobals bool) []*program.Type {
	var seeds []*program.Type
	for _, fn := range emitted {
		if fn.Return != nil {
			seeds = append(seeds, fn.Return)
		}
		seeds = append(seeds, fn.Params...)
	}
	for _, a := range arts {
		seeds = append(seeds, a.Types...)
		if emitGlobals {
			for _, g := range a.Globals {
				if g.Type != nil {
					seeds = append(seeds, g.Type)
				}
			}
		}
	}
	return seeds
}
