package main

import (
	"context"
	"fmt"
	"os"

	"cexport/internal/export"
)

func cmdExport(args []string) error {
	prog, dec, cfg, err := setup("export", args)
	if err != nil {
		return err
	}

	sum, err := export.Run(context.Background(), prog, dec, dec, &cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "exported %d functions (%d declarations, %d globals, %d types)\n",
		sum.Functions, sum.FuncDecls, sum.Globals, sum.Types)
	for _, p := range sum.Paths {
		fmt.Println(p)
	}
	return nil
}
