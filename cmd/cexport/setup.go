package main

import (
	"flag"
	"fmt"
	"strings"

	"cexport/internal/export"
	"cexport/internal/logger"
	"cexport/internal/progfile"
	"cexport/internal/program"
)

// commonFlags holds the flags shared by every subcommand.
type commonFlags struct {
	programPath string
	configPath  string
	verbose     bool
	noColor     bool
	options     []string // raw key=value pairs from -o, applied after --config
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.programPath, "program", "", "program database JSON")
	fs.StringVar(&c.configPath, "config", "", "key=value option file")
	fs.BoolVar(&c.verbose, "verbose", false, "debug logging")
	fs.BoolVar(&c.noColor, "no-color", false, "plain log output")
	fs.Var((*optionFlag)(&c.options), "o", "set one export option key=value (repeatable)")
}

// optionFlag accumulates repeated -o key=value pairs.
type optionFlag []string

func (o *optionFlag) String() string { return strings.Join(*o, ",") }

func (o *optionFlag) Set(s string) error {
	if !strings.Contains(s, "=") {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	*o = append(*o, s)
	return nil
}

// setup parses flags, initializes logging, loads the program database,
// and builds the run configuration. Subcommand-specific flags register
// through extra before parsing.
func setup(name string, args []string, extra ...func(*flag.FlagSet)) (*program.Program, *progfile.Decompiler, export.Config, error) {
	var cfg export.Config
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var cf commonFlags
	cf.register(fs)
	for _, reg := range extra {
		reg(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, cfg, err
	}
	logger.Init(cf.verbose, cf.noColor)

	if cf.programPath == "" {
		return nil, nil, cfg, fmt.Errorf("--program is required")
	}

	cfg = export.DefaultConfig()
	if cf.configPath != "" {
		if err := export.LoadConfigFile(cf.configPath, &cfg); err != nil {
			return nil, nil, cfg, err
		}
	}
	for _, kv := range cf.options {
		key, value, _ := strings.Cut(kv, "=")
		if err := cfg.Set(key, value); err != nil {
			return nil, nil, cfg, err
		}
	}

	prog, dec, err := progfile.Load(cf.programPath)
	if err != nil {
		return nil, nil, cfg, err
	}
	return prog, dec, cfg, nil
}
