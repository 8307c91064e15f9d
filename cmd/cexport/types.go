package main

import (
	"context"
	"fmt"
	"sort"

	"cexport/internal/export"
	"cexport/internal/program"
	"cexport/internal/typeclose"
)

func cmdTypes(args []string) error {
	prog, dec, cfg, err := setup("types", args)
	if err != nil {
		return err
	}

	var closed []*program.Type
	if cfg.Scoped() {
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
		closed = typeclose.Close(export.SeedTypes(arts, res.Emitted, cfg.EmitGlobals))
	} else {
		closed = prog.Types
	}

	names := make([]string, 0, len(closed))
	for _, t := range closed {
		if t.Name != "" {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
	fmt.Printf("%d named types (%d total in closure)\n", len(names), len(closed))
	return nil
}
