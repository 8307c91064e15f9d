package main

import (
	"fmt"
	"strings"

	"cexport/internal/export"
)

func cmdFilter(args []string) error {
	prog, _, cfg, err := setup("filter", args)
	if err != nil {
		return err
	}

	funcs := export.Select(prog, &cfg)
	for _, fn := range funcs {
		line := fmt.Sprintf("0x%08x  %s", uint64(fn.Entry), fn.Name)
		if len(fn.Tags) > 0 {
			line += "  [" + strings.Join(fn.Tags, ",") + "]"
		}
		if fn.External {
			line += "  (external)"
		}
		fmt.Println(line)
	}
	return nil
}
