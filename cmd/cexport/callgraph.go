package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"cexport/internal/callgraph"
	"cexport/internal/export"
	"cexport/internal/output"
)

func cmdCallgraph(args []string) error {
	var roots string
	prog, dec, cfg, err := setup("callgraph", args, func(fs *flag.FlagSet) {
		fs.StringVar(&roots, "roots", "", "comma-separated function names; prune the graph to their reachable subgraph")
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if err := dec.Open(ctx); err != nil {
		return err
	}
	defer dec.Close()

	funcs := export.Select(prog, &cfg)
	arts, err := export.Collect(ctx, dec, funcs, &cfg)
	if err != nil {
		return err
	}
	res, err := export.Collate(ctx, prog, dec, &cfg, arts)
	if err != nil {
		return err
	}

	base := cfg.BaseName
	if base == "" {
		base = prog.Name
	}
	g := export.BuildGraph(res)
	if roots != "" {
		var names []string
		for _, r := range strings.Split(roots, ",") {
			if r = strings.TrimSpace(r); r != "" {
				names = append(names, r)
			}
		}
		g = callgraph.Prune(g, names)
	}
	dot := callgraph.DOT(g, base)
	path, err := output.WriteDOT(cfg.OutputDir, base, dot)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "call graph: %d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
	fmt.Println(path)
	return nil
}
