package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "export":
		err = cmdExport(os.Args[2:])
	case "filter":
		err = cmdFilter(os.Args[2:])
	case "types":
		err = cmdTypes(os.Args[2:])
	case "callgraph":
		err = cmdCallgraph(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `cexport — assemble decompiled C source from a program database

Usage:
  cexport export    --program <db.json> [options]   Export C/header units
  cexport filter    --program <db.json> [options]   List functions passing the filters
  cexport types     --program <db.json> [options]   Print the type closure for the selection
  cexport callgraph --program <db.json> [options]   Write a DOT call graph for the selection

Flags:
  --program <path>   Program database JSON exported from the analysis platform
  --config <path>    key=value option file applied before -o overrides
  -o key=value       Set one export option (repeatable)
  --verbose          Debug logging
  --no-color         Plain log output
  --roots <names>    callgraph only: prune to the subgraph reachable from these functions

Options (for -o and --config):
  output_dir                  Output directory (default ".")
  base_name                   Base name for output files (default: program name)
  create_c_file               Emit the C implementation unit (default true)
  create_header_file          Emit the header unit (default false)
  use_cpp_style_comments      // banners instead of /* */ (default true)
  emit_type_definitions       Include type definitions (default true)
  emit_referenced_globals     Include referenced globals (default true)
  emit_function_declarations  Include function prototypes (default true)
  function_tag_filters        Comma-separated tag list
  function_tag_exclude        Exclude (vs include) matching tags (default true)
  address_set_str             Address ranges, e.g. "0x1000-0x2000,0x3000"
  include_functions_only      Comma-separated function name allow-list
  emit_failure_comments       Keep comment artifacts for failed decompiles (default true)
  run_decompiler_parameter_id Request the parameter-id analysis pre-pass (default true)
  decompile_timeout           Per-function decompile budget (default 30s)
`)
}
